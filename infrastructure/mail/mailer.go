// Package mail envia o relatório de preços por e-mail após um ciclo de
// atualização dos links monitorados.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lrodrigues/costura-backoffice-api/internal/config"
	"github.com/lrodrigues/costura-backoffice-api/internal/domain"
)

type Mailer interface {
	SendPriceReport(to []string, alerts []domain.PriceAlert) error
}

type SMTPMailer struct {
	cfg config.Mail
}

func NewSMTPMailer(cfg config.Mail) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendPriceReport monta e envia o resumo de mudanças de preço. Sem
// destinatários ou sem mudanças, não envia nada.
func (m *SMTPMailer) SendPriceReport(to []string, alerts []domain.PriceAlert) error {
	if !m.cfg.Enabled {
		logrus.Debug("Envio de e-mail desabilitado por configuração")
		return nil
	}

	if len(to) == 0 || len(alerts) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Monitor de preços: %d anúncios mudaram", len(alerts))
	body := buildReportBody(alerts)

	msg := strings.Builder{}
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, to, []byte(msg.String())); err != nil {
		return fmt.Errorf("erro ao enviar relatório de preços: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"destinatarios": len(to),
		"alertas":       len(alerts),
	}).Info("Relatório de preços enviado")

	return nil
}

func buildReportBody(alerts []domain.PriceAlert) string {
	b := strings.Builder{}

	b.WriteString("<h2>Mudanças de preço nos anúncios monitorados</h2>")
	b.WriteString("<table border=\"1\" cellpadding=\"6\" cellspacing=\"0\">")
	b.WriteString("<tr><th>Anúncio</th><th>Preço anterior</th><th>Preço atual</th><th>Meu preço</th><th>Situação</th><th>Full</th></tr>")

	for _, alert := range alerts {
		full := "-"
		if alert.Full {
			full = "Full"
		}

		b.WriteString("<tr>")
		b.WriteString(fmt.Sprintf("<td><a href=%q>%s</a></td>", alert.Link, alert.Name))
		b.WriteString(fmt.Sprintf("<td>R$ %.2f</td>", alert.OldPrice))
		b.WriteString(fmt.Sprintf("<td>R$ %.2f</td>", alert.NewPrice))
		b.WriteString(fmt.Sprintf("<td>R$ %.2f</td>", alert.MyPrice))
		b.WriteString(fmt.Sprintf("<td>%s</td>", alert.Status))
		b.WriteString(fmt.Sprintf("<td>%s</td>", full))
		b.WriteString("</tr>")
	}

	b.WriteString("</table>")

	return b.String()
}
