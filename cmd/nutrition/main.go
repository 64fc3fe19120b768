// Command nutrition calcula planes de alimentación desde la terminal, con el
// mismo motor que usa la API. Útil para soporte y para revisar catálogos.
//
//	nutrition plan --weight 4 --age 24 --neutered
//	nutrition batch -f cats.yaml --days 30
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
