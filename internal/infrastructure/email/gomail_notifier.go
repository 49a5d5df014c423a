// Package email implementa la entrega de alertas de stock bajo por correo
// SMTP. Es el único canal de notificación de la aplicación.
package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	gomail "gopkg.in/gomail.v2"

	"github.com/jhoicas/StockWatch-api/internal/application/ports"
	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
	"github.com/jhoicas/StockWatch-api/pkg/config"
	"github.com/jhoicas/StockWatch-api/pkg/logger"
)

var _ ports.AlertNotifier = (*GomailNotifier)(nil)

// GomailNotifier envía las alertas vía SMTP usando gomail. Cada alerta abre
// su propia conexión: el volumen es bajo (un correo por cliente por ciclo).
type GomailNotifier struct {
	dialer *gomail.Dialer
	from   string
	log    *logger.Logger
}

// NewGomailNotifier construye el notificador con la configuración SMTP.
func NewGomailNotifier(cfg config.SMTPConfig, log *logger.Logger) *GomailNotifier {
	return &GomailNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

// SendLowStockAlert envía el resumen de stock bajo al correo del cliente.
// El caso de uso garantiza que items no está vacío.
func (n *GomailNotifier) SendLowStockAlert(ctx context.Context, customer *entity.Customer, items []entity.LowStockItem) error {
	if customer.Email == "" {
		return fmt.Errorf("cliente %s sin email de alertas", customer.ID)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", customer.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Alerta de stock bajo: %d producto(s) bajo umbral", len(items)))
	msg.SetBody("text/html", buildBody(customer, items))

	if err := n.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar alerta a %s: %w", customer.Email, err)
	}
	n.log.Debug().Str("customer_id", customer.ID).Str("to", customer.Email).
		Int("items", len(items)).Msg("email: alerta enviada")
	return nil
}

// buildBody arma el cuerpo HTML con la tabla de productos bajo umbral, en el
// mismo orden determinista en que los entregó el evaluador.
func buildBody(customer *entity.Customer, items []entity.LowStockItem) string {
	var b strings.Builder
	b.WriteString("<h2>Stock bajo</h2>")
	b.WriteString(fmt.Sprintf("<p>Hola %s, estos productos están en o por debajo de su umbral:</p>", html.EscapeString(customer.Name)))
	b.WriteString(`<table border="1" cellpadding="6" cellspacing="0">`)
	b.WriteString("<tr><th>SKU</th><th>Producto</th><th>Ubicación</th><th>Cantidad</th><th>Umbral</th></tr>")
	for _, it := range items {
		b.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%s</td><td>%s</td><td align=\"right\">%d</td><td align=\"right\">%d</td></tr>",
			html.EscapeString(it.ProductSKU),
			html.EscapeString(it.ProductName),
			html.EscapeString(it.LocationName),
			it.CurrentQuantity,
			it.ThresholdQuantity,
		))
	}
	b.WriteString("</table>")
	b.WriteString("<p>Este correo se genera automáticamente en cada ciclo de evaluación.</p>")
	return b.String()
}
