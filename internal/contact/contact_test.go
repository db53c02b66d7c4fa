package contact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajaym/portfolio/internal/store"
)

func valid() Submission {
	return Submission{Name: "Ada", Email: "ada@example.com", Message: "Let's build a game."}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Submission)
		invalid []string
	}{
		{name: "all required present", mutate: func(*Submission) {}},
		{name: "subject optional", mutate: func(s *Submission) { s.Subject = "" }},
		{name: "subject allowed", mutate: func(s *Submission) { s.Subject = "Project inquiry" }},
		{name: "empty name", mutate: func(s *Submission) { s.Name = "" }, invalid: []string{"name"}},
		{name: "blank name", mutate: func(s *Submission) { s.Name = "   " }, invalid: []string{"name"}},
		{name: "empty email", mutate: func(s *Submission) { s.Email = "" }, invalid: []string{"email"}},
		{name: "malformed email", mutate: func(s *Submission) { s.Email = "ada-at-example" }, invalid: []string{"email"}},
		{name: "empty message", mutate: func(s *Submission) { s.Message = "" }, invalid: []string{"message"}},
		{
			name:    "everything empty",
			mutate:  func(s *Submission) { *s = Submission{} },
			invalid: []string{"name", "email", "message"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			err := s.Validate()
			if len(tt.invalid) == 0 {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want *ValidationError, got %v", err)
			require.Len(t, verr.Fields, len(tt.invalid))
			for _, f := range tt.invalid {
				assert.True(t, verr.Has(f), "expected %s to be rejected", f)
			}
			assert.False(t, verr.Has("subject"))
		})
	}
}

func TestSanitizeStripsMarkup(t *testing.T) {
	s := Submission{
		Name:    "<b>Ada</b>",
		Email:   "ada@example.com",
		Message: "Hi <script>alert(1)</script>there & welcome",
	}.Sanitize()

	assert.Equal(t, "Ada", s.Name)
	assert.NotContains(t, s.Message, "<script>")
	assert.Contains(t, s.Message, "& welcome")
}

func TestFormRelayPostsFields(t *testing.T) {
	var got http.Header
	var form map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		got = r.Header.Clone()
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	relay := NewFormRelay(srv.URL, time.Second)
	sub := valid()
	sub.Subject = "Hello"
	require.NoError(t, relay.Deliver(context.Background(), sub))

	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, []string{"Ada"}, form["name"])
	assert.Equal(t, []string{"ada@example.com"}, form["email"])
	assert.Equal(t, []string{"Hello"}, form["subject"])
	assert.Equal(t, []string{"Let's build a game."}, form["message"])
}

func TestFormRelayRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "spam", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	err := NewFormRelay(srv.URL, time.Second).Deliver(context.Background(), valid())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRelayRejected))
	assert.Contains(t, err.Error(), "422")
}

func TestMailerComposesMessage(t *testing.T) {
	var addr string
	var to []string
	var msg string
	m := &Mailer{
		Host: "smtp.example.com", Port: "587",
		User: "me@example.com", Pass: "pw", To: "inbox@example.com",
		SendMail: func(a string, _ smtp.Auth, _ string, rcpt []string, body []byte) error {
			addr, to, msg = a, rcpt, string(body)
			return nil
		},
	}
	sub := valid()
	sub.Email = "ada@example.com\r\nBcc: victim@example.com"

	require.NoError(t, m.Deliver(context.Background(), sub))
	assert.Equal(t, "smtp.example.com:587", addr)
	assert.Equal(t, []string{"inbox@example.com"}, to)
	assert.Contains(t, msg, "Subject: Portfolio Contact: Ada\r\n")
	assert.NotContains(t, msg, "\r\nBcc:")
}

func TestMailerRequiresCredentials(t *testing.T) {
	err := (&Mailer{}).Deliver(context.Background(), valid())
	assert.ErrorIs(t, err, ErrMailerNotConfigured)
}

type fakeRelay struct {
	err  error
	subs []Submission
}

func (f *fakeRelay) Deliver(_ context.Context, s Submission) error {
	f.subs = append(f.subs, s)
	return f.err
}

func newOutbox(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestServiceSubmitDelivers(t *testing.T) {
	relay := &fakeRelay{}
	notify := &fakeRelay{err: errors.New("smtp down")}
	outbox := newOutbox(t)
	svc := NewService(relay, notify, outbox, nil)

	sub := valid()
	sub.Name = "  <i>Ada</i> "
	id, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.Len(t, relay.subs, 1)
	assert.Equal(t, "Ada", relay.subs[0].Name)
	assert.Len(t, notify.subs, 1, "notification failures do not fail the submission")

	msgs, err := outbox.RecentMessages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, id, msgs[0].ID)
	assert.Equal(t, store.StatusDelivered, msgs[0].Status)
}

func TestServiceSubmitRecordsRelayFailure(t *testing.T) {
	relay := &fakeRelay{err: errors.New("boom")}
	outbox := newOutbox(t)
	svc := NewService(relay, nil, outbox, nil)

	id, err := svc.Submit(context.Background(), valid())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	msgs, err := outbox.RecentMessages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, id, msgs[0].ID)
	assert.Equal(t, store.StatusFailed, msgs[0].Status)
	assert.True(t, strings.Contains(msgs[0].Error, "boom"))
}

func TestServiceSubmitRejectsInvalid(t *testing.T) {
	relay := &fakeRelay{}
	outbox := newOutbox(t)
	svc := NewService(relay, nil, outbox, nil)

	_, err := svc.Submit(context.Background(), Submission{Name: "Ada"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, relay.subs)

	msgs, err := outbox.RecentMessages(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestServiceSubmitRejectsMarkupOnlyFields(t *testing.T) {
	relay := &fakeRelay{}
	outbox := newOutbox(t)
	svc := NewService(relay, nil, outbox, nil)

	sub := valid()
	sub.Name = "<b></b>"
	sub.Message = "<script>alert(1)</script>"
	_, err := svc.Submit(context.Background(), sub)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("name"))
	assert.True(t, verr.Has("message"))
	assert.False(t, verr.Has("email"))
	assert.Empty(t, relay.subs)

	msgs, err := outbox.RecentMessages(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
