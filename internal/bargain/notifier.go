package bargain

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	"github.com/vitalhub/storefront/config"
	"github.com/vitalhub/storefront/internal/checkout"
	"github.com/vitalhub/storefront/internal/domain"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// MailNotifier emails the shop operator when a new offer arrives. It is
// wired only when SMTP is configured; delivery failures are logged, never
// surfaced to the customer.
type MailNotifier struct {
	cfg config.SmtpConfig
}

// RegisterMailNotifier subscribes the notifier to the offer-created event.
func RegisterMailNotifier(bus EventBus.Bus, cfg config.SmtpConfig) error {
	if !cfg.Enabled || cfg.Host == "" || cfg.NotifyTo == "" {
		return nil
	}
	n := &MailNotifier{cfg: cfg}
	return bus.SubscribeAsync(EventOfferCreated, n.onOfferCreated, false)
}

func (n *MailNotifier) onOfferCreated(o *domain.BargainOffer) {
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", n.cfg.NotifyTo)
	m.SetHeader("Subject", fmt.Sprintf("New bargain offer from %s", o.CustomerName))
	m.SetBody("text/plain", fmt.Sprintf(
		"Product: %d\nCustomer: %s (%s)\nOffer: %s x %d\nMessage: %s\n",
		o.ProductID,
		o.CustomerName, o.CustomerPhone,
		checkout.FormatUGX(o.OfferedPriceCents), o.Qty,
		o.Message,
	))

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.Username, n.cfg.Passwd)
	if err := d.DialAndSend(m); err != nil {
		zap.L().Warn("bargain notification mail failed", zap.Error(err))
	}
}
