package notifications

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"catbox/internal/domain/orders"
)

// Templates de mensajes por idioma. Los %s/%d se completan en el orden documentado.
type Templates struct {
	// id, nombre, teléfono, ciudad, plan, gatos, total, moneda, link, fecha
	Admin string
	// nombre, id, ciudades, marca
	Customer string
	// separador al unir ciudades ("Cairo and Giza")
	CityJoin string
}

func EnglishTemplates() Templates {
	return Templates{
		Admin: `🐱 New order #%s

📋 Customer:
👤 Name: %s
📱 Phone: %s
🏘️ City: %s

📦 Order:
📋 Plan: %s
🐾 Cats: %d
💰 Total: %s %s

🔗 Order link: %s

⏰ Created: %s`,
		Customer: `Hi %s! 🎉

We received your order #%s

✅ We will contact you within a few hours to confirm the details and delivery time

🚚 Free delivery in %s
💳 Cash on delivery

Thank you for trusting %s! 🐱❤️`,
		CityJoin: " and ",
	}
}

func ArabicTemplates() Templates {
	return Templates{
		Admin: `🐱 طلب جديد #%s

📋 تفاصيل العميل:
👤 الاسم: %s
📱 الهاتف: %s
🏘️ المدينة: %s

📦 تفاصيل الطلب:
📋 الخطة: %s
🐾 عدد القطط: %d
💰 الإجمالي: %s %s

🔗 رابط الطلب: %s

⏰ تم إنشاء الطلب: %s`,
		Customer: `أهلاً %s! 🎉

تم استلام طلبك رقم #%s بنجاح

✅ سنتواصل معك خلال ساعات قليلة لتأكيد التفاصيل وموعد التوصيل

🚚 التوصيل مجاني في %s
💳 الدفع عند الاستلام

شكراً لثقتك في %s! 🐱❤️`,
		CityJoin: " و",
	}
}

// TemplatesFor: "" y desconocidos caen en inglés.
func TemplatesFor(locale string) Templates {
	if strings.EqualFold(strings.TrimSpace(locale), "ar") {
		return ArabicTemplates()
	}
	return EnglishTemplates()
}

// AdminOrderURL arma el link al pedido en el panel.
func AdminOrderURL(baseURL, orderID string) string {
	return strings.TrimRight(baseURL, "/") + "/admin/orders/" + orderID
}

func (s *Service) adminMessage(o orders.Order) string {
	return fmt.Sprintf(s.tpl.Admin,
		o.ID,
		o.CustomerName,
		o.Phone,
		o.City,
		o.PlanName,
		o.Summary.CatCount,
		strconv.FormatFloat(o.Total, 'f', -1, 64),
		o.Currency,
		AdminOrderURL(s.settings.BaseURL, o.ID),
		o.CreatedAt.In(s.loc).Format(time.DateTime),
	)
}

func (s *Service) customerMessage(o orders.Order) string {
	return fmt.Sprintf(s.tpl.Customer,
		o.CustomerName,
		o.ID,
		strings.Join(s.settings.CitiesServed, s.tpl.CityJoin),
		s.settings.BrandName,
	)
}
