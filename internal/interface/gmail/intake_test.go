package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"flight-intent-service/internal/domain/entity"
	"flight-intent-service/mocks"
	"flight-intent-service/pkg/logger"
)

type recordingProcessor struct {
	mu    sync.Mutex
	mails []*entity.MailMessage
}

func (p *recordingProcessor) ProcessMail(_ context.Context, mail *entity.MailMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mails = append(p.mails, mail)
	return nil
}

func encode(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func newGmailServer(t *testing.T, messages map[string]*gmail.Message) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const prefix = "/gmail/v1/users/me/messages"
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == prefix:
			assert.True(t, strings.HasPrefix(r.URL.Query().Get("q"), "after:"))
			list := &gmail.ListMessagesResponse{}
			for _, id := range []string{"m1", "m2"} {
				list.Messages = append(list.Messages, &gmail.Message{Id: id})
			}
			_ = json.NewEncoder(w).Encode(list)
		case strings.HasPrefix(r.URL.Path, prefix+"/"):
			msg, ok := messages[strings.TrimPrefix(r.URL.Path, prefix+"/")]
			if !ok {
				http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
				return
			}
			_ = json.NewEncoder(w).Encode(msg)
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestFetchAndProcess_SkipsSeenMessages(t *testing.T) {
	messages := map[string]*gmail.Message{
		"m2": {
			Id:           "m2",
			InternalDate: 1760000000000,
			Payload: &gmail.MessagePart{
				MimeType: "multipart/alternative",
				Headers: []*gmail.MessagePartHeader{
					{Name: "From", Value: "ana@example.com"},
					{Name: "Subject", Value: "Reserva de vuelo"},
				},
				Parts: []*gmail.MessagePart{
					{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: encode("Vuelo de Quito a Madrid")}},
					{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: encode("<p>Vuelo</p>")}},
				},
			},
		},
	}
	srv := newGmailServer(t, messages)
	defer srv.Close()

	logs := new(mocks.MockBookingLogRepo)
	logs.On("GetLatest", mock.Anything, entity.SourceMail).Return(nil, nil)
	logs.On("FindBySourceRefs", mock.Anything, entity.SourceMail, []string{"m1", "m2"}).
		Return(map[string]*entity.BookingLog{"m1": {ID: "x", SourceRef: "m1"}}, nil)

	processor := &recordingProcessor{}
	intake, err := NewIntake(context.Background(), logs, processor, logger.NewNopLogger(), time.Minute,
		option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	n, err := intake.FetchAndProcess(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Len(t, processor.mails, 1)
	mail := processor.mails[0]
	assert.Equal(t, "m2", mail.MessageID)
	assert.Equal(t, "ana@example.com", mail.From)
	assert.Equal(t, "Reserva de vuelo", mail.Subject)
	assert.Equal(t, "Vuelo de Quito a Madrid", mail.Body)
	assert.Equal(t, "<p>Vuelo</p>", mail.HTMLBody)
	logs.AssertExpectations(t)
}

func TestFetchAndProcess_ListError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"forbidden"}}`))
	}))
	defer srv.Close()

	logs := new(mocks.MockBookingLogRepo)
	logs.On("GetLatest", mock.Anything, entity.SourceMail).
		Return(&entity.BookingLog{ReceivedAt: time.Now().Add(-time.Hour)}, nil)

	intake, err := NewIntake(context.Background(), logs, &recordingProcessor{}, logger.NewNopLogger(), time.Minute,
		option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = intake.FetchAndProcess(context.Background())
	assert.Error(t, err)
}

func TestConvertToMail_SinglePartBody(t *testing.T) {
	msg := &gmail.Message{
		Id:           "abc",
		InternalDate: 1000,
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Body:     &gmail.MessagePartBody{Data: base64.RawURLEncoding.EncodeToString([]byte("2 billetes a Roma"))},
		},
	}

	mail := convertToMail(msg)
	assert.Equal(t, "abc", mail.MessageID)
	assert.Equal(t, "2 billetes a Roma", mail.Body)
	assert.Equal(t, time.UnixMilli(1000).UTC(), mail.ReceivedAt)
}
