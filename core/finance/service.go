package finance

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"sync"

	"github.com/pkg/errors"

	"github.com/shuledash/shuledash/core"
	"github.com/shuledash/shuledash/services/schoolapi"
)

type Service struct {
	api  *schoolapi.Client
	mail core.EmailService
	log  core.Logger
}

func NewService(api *schoolapi.Client, mailer core.EmailService, log core.Logger) *Service {
	return &Service{api: api, mail: mailer, log: log}
}

// Statement fetches the student's charges and payments concurrently and
// builds the merged running-balance statement. Either list falls back to
// empty on its own; auth errors abort.
func (svc *Service) Statement(ctx context.Context, studentID string) (Statement, error) {
	q := make(url.Values)
	q.Set("studentId", studentID)

	charges := make([]Charge, 0)
	payments := make([]Payment, 0)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		errs[0] = svc.api.Get(ctx, "/finance/charges", q, "charges", &charges)
	}()
	go func() {
		defer wg.Done()
		errs[1] = svc.api.Get(ctx, "/finance/payments", q, "payments", &payments)
	}()
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return Statement{}, errors.Wrap(err, "loading statement")
		}
	}

	return BuildStatement(studentID, charges, payments), nil
}

// EmailStatement renders the statement to CSV and mails it. Sending is
// asynchronous; only building and attaching can fail here.
func (svc *Service) EmailStatement(ctx context.Context, studentID, studentName string, to mail.Address) error {
	st, err := svc.Statement(ctx, studentID)
	if err != nil {
		return err
	}

	buf, err := renderCSV(st)
	if err != nil {
		return errors.Wrap(err, "rendering statement")
	}

	msg := &core.EmailMessage{
		To:      []mail.Address{to},
		Subject: fmt.Sprintf("Financial statement - %s", studentName),
		BodyStr: fmt.Sprintf(
			"Please find attached the financial statement for %s.\n\n"+
				"Total charges: %s\nTotal payments: %s\nOutstanding balance: %s\n",
			studentName, amount(st.TotalCharges), amount(st.TotalPayments), amount(st.Balance)),
	}
	if err := msg.Attach(buf, "statement-"+studentID+".csv", "text/csv"); err != nil {
		return errors.Wrap(err, "attaching statement")
	}

	svc.mail.SendMessages(msg)
	return nil
}

func renderCSV(st Statement) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	rows := [][]string{{"Date", "Description", "Type", "Amount", "Balance"}}
	for _, l := range st.Lines {
		rows = append(rows, []string{l.Date, l.Description, l.Kind, amount(l.Amount), amount(l.Balance)})
	}
	rows = append(rows,
		[]string{"", "Total charges", "", amount(st.TotalCharges), ""},
		[]string{"", "Total payments", "", amount(st.TotalPayments), ""},
		[]string{"", "Balance", "", amount(st.Balance), ""},
	)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf, nil
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
