package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

type SMTPProvider struct {
	dialer *gomail.Dialer
	from   string
	inbox  string
}

func NewSMTP(host string, port int, username, password, from, inbox string) *SMTPProvider {
	return &SMTPProvider{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		inbox:  inbox,
	}
}

var orderCreatedTmpl = template.Must(template.New("order_created").Parse(`
<h2>New subscription order {{.OrderNumber}}</h2>
<p>Estimated delivery: {{.DeliveryDate.Format "Mon, 02 Jan 2006"}}</p>
<p>Total: ${{printf "%.2f" .TotalDollars}}</p>
<ul>
{{range .RecipeNames}}<li>{{.}}</li>{{end}}
</ul>
`))

func (p *SMTPProvider) OrderCreated(ctx context.Context, n OrderNotification) error {
	var body bytes.Buffer
	err := orderCreatedTmpl.Execute(&body, struct {
		OrderNotification
		TotalDollars float64
	}{n, float64(n.TotalCents) / 100})
	if err != nil {
		return fmt.Errorf("render order notification: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", p.from)
	msg.SetHeader("To", p.inbox)
	msg.SetHeader("Subject", fmt.Sprintf("New order %s", n.OrderNumber))
	msg.SetBody("text/html", body.String())

	return p.dialer.DialAndSend(msg)
}
