package mailbox

import (
	"strings"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// imapSession adapts the go-imap client to the session interface
type imapSession struct {
	c *imapclient.Client
}

func dialTLS(addr string) (session, error) {
	c, err := imapclient.DialTLS(addr, nil)
	if err != nil {
		return nil, err
	}
	return &imapSession{c: c}, nil
}

func (s *imapSession) Login(username, password string) error {
	return s.c.Login(username, password).Wait()
}

func (s *imapSession) Select(folder string) error {
	_, err := s.c.Select(folder, nil).Wait()
	return err
}

func (s *imapSession) SearchBody(text string) ([]uint32, error) {
	data, err := s.c.Search(&imap.SearchCriteria{Body: []string{text}}, nil).Wait()
	if err != nil {
		return nil, err
	}
	return data.AllSeqNums(), nil
}

func (s *imapSession) FetchEnvelopes(nums []uint32) ([]envelopeSummary, error) {
	seqSet := imap.SeqSetNum(nums...)
	msgs, err := s.c.Fetch(seqSet, &imap.FetchOptions{Envelope: true}).Collect()
	if err != nil {
		return nil, err
	}

	envelopes := make([]envelopeSummary, 0, len(msgs))
	for _, msg := range msgs {
		if msg.Envelope == nil {
			continue
		}
		envelopes = append(envelopes, envelopeSummary{
			From:    formatAddresses(msg.Envelope.From),
			Subject: msg.Envelope.Subject,
		})
	}
	return envelopes, nil
}

func (s *imapSession) Logout() {
	if err := s.c.Logout().Wait(); err != nil {
		_ = s.c.Close()
	}
}

func formatAddresses(addrs []imap.Address) string {
	parts := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if a.Name != "" {
			parts = append(parts, a.Name+" <"+a.Addr()+">")
			continue
		}
		parts = append(parts, a.Addr())
	}
	return strings.Join(parts, ", ")
}
