// Package mail delivers the run log over SMTP.
package mail

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	gomail "github.com/wneessen/go-mail"

	"patch-checker/pkg/config"
)

const defaultPort = 25

type dialer interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

type Sender struct {
	client  dialer
	addr    string
	from    string
	to      []string
	cc      []string
	subject string
	timeout time.Duration
	now     func() time.Time
}

// New prepares an SMTP client for cfg.Server ("host" or "host:port"). Every session is
// bounded by timeout when it is positive.
func New(cfg config.MailConfig, timeout time.Duration) (*Sender, error) {
	host, rawPort, err := net.SplitHostPort(cfg.Server)
	port := defaultPort
	if err != nil {
		// no port given
		host = cfg.Server
	} else if port, err = strconv.Atoi(rawPort); err != nil {
		return nil, fmt.Errorf("invalid SMTP port '%s'", rawPort)
	}

	opts := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithDialContextFunc(dialWithDeadline),
	}
	if timeout > 0 {
		opts = append(opts, gomail.WithTimeout(timeout))
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("can't create SMTP client for '%s': %w", cfg.Server, err)
	}
	return &Sender{
		client:  client,
		addr:    net.JoinHostPort(host, strconv.Itoa(port)),
		from:    cfg.From,
		to:      cfg.To,
		cc:      cfg.CC,
		subject: cfg.Subject,
		timeout: timeout,
		now:     time.Now,
	}, nil
}

// dialWithDeadline carries the context deadline onto the connection, so a server that
// accepts but never answers can't block the session past it.
func dialWithDeadline(ctx context.Context, network, address string) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, address)
	if err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return conn, nil
}

// Send mails body to every To and CC recipient.
func (s *Sender) Send(ctx context.Context, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := s.message(body)
	if err != nil {
		return err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("can't send mail via '%s': %w", s.addr, err)
	}
	return nil
}

func (s *Sender) message(body string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("invalid sender '%s': %w", s.from, err)
	}
	if err := msg.To(s.to...); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	if len(s.cc) != 0 {
		if err := msg.Cc(s.cc...); err != nil {
			return nil, fmt.Errorf("invalid cc recipient: %w", err)
		}
	}
	msg.Subject(s.subject)
	msg.SetDateWithValue(s.now())
	msg.SetBodyString(gomail.TypeTextPlain, body)
	return msg, nil
}
