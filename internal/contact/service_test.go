package contact

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinashop/vitrina/internal/domain"
)

// memStore records contact payloads
type memStore struct {
	mu       sync.Mutex
	contacts map[string][]byte
}

func (m *memStore) GetProducts() ([]domain.Product, bool) { return nil, false }
func (m *memStore) SaveProducts([]domain.Product) error   { return nil }
func (m *memStore) GetValue(string) (string, bool)        { return "", false }
func (m *memStore) SetValue(string, string) error         { return nil }
func (m *memStore) SavedAt() int64                        { return 0 }
func (m *memStore) Close() error                          { return nil }

func (m *memStore) SaveContact(id string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.contacts == nil {
		m.contacts = make(map[string][]byte)
	}
	m.contacts[id] = payload
	return nil
}

func newFastService(st domain.CatalogStore) *Service {
	svc := NewService(st, nil)
	svc.latency = time.Millisecond
	return svc
}

func validMessage() domain.ContactMessage {
	return domain.ContactMessage{
		Name:    "Mira",
		Email:   "mira@example.com",
		Message: "Do you ship ajvar to Austria?",
	}
}

func TestSubmitPersistsAndAcknowledges(t *testing.T) {
	st := &memStore{}
	svc := newFastService(st)

	receipt, err := svc.Submit(context.Background(), validMessage())
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.ID)

	st.mu.Lock()
	defer st.mu.Unlock()
	require.Len(t, st.contacts, 1)

	var stored domain.ContactMessage
	require.NoError(t, json.Unmarshal(st.contacts[receipt.ID], &stored))
	assert.Equal(t, "mira@example.com", stored.Email)
}

func TestSubmitRejectsInvalidMessages(t *testing.T) {
	svc := newFastService(nil)

	tests := []struct {
		name string
		msg  domain.ContactMessage
	}{
		{"missing name", domain.ContactMessage{Email: "a@b.co", Message: "long enough text"}},
		{"bad email", domain.ContactMessage{Name: "Mira", Email: "not-an-email", Message: "long enough text"}},
		{"short message", domain.ContactMessage{Name: "Mira", Email: "a@b.co", Message: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tt.msg)
			assert.ErrorIs(t, err, domain.ErrInvalidContact)
		})
	}
}

func TestSubmitWithoutStore(t *testing.T) {
	svc := newFastService(nil)

	receipt, err := svc.Submit(context.Background(), validMessage())
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.ID)
}

func TestSubmitHonorsContextCancellation(t *testing.T) {
	svc := NewService(nil, nil) // full 400ms latency

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Submit(ctx, validMessage())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReceiptsAreUnique(t *testing.T) {
	svc := newFastService(nil)

	r1, err := svc.Submit(context.Background(), validMessage())
	require.NoError(t, err)
	r2, err := svc.Submit(context.Background(), validMessage())
	require.NoError(t, err)

	assert.NotEqual(t, r1.ID, r2.ID)
}
