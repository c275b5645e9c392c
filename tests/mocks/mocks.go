package mocks

import (
	"fmt"
	"sort"

	"eventmanager/models"
)

type MockClientRepo struct {
	Clients map[int64]models.Client // keyed by id
	nextID  int64
}

func NewMockClientRepo() *MockClientRepo {
	return &MockClientRepo{Clients: map[int64]models.Client{}}
}

func (m *MockClientRepo) Create(c *models.Client) error {
	for _, existing := range m.Clients {
		if existing.Username == c.Username || existing.Correo == c.Correo {
			return fmt.Errorf("duplicate username or correo")
		}
	}
	m.nextID++
	c.ID = m.nextID
	m.Clients[c.ID] = *c
	return nil
}

func (m *MockClientRepo) ValidateCredentials(usernameOrEmail, plain string) (models.Client, error) {
	// plain comparison keeps route tests independent of bcrypt cost
	for _, c := range m.Clients {
		if (c.Username == usernameOrEmail || c.Correo == usernameOrEmail) && c.Password == plain {
			return c, nil
		}
	}
	return models.Client{}, fmt.Errorf("bad credentials")
}

func (m *MockClientRepo) GetByID(id int64) (models.Client, error) {
	c, ok := m.Clients[id]
	if !ok {
		return models.Client{}, models.ErrClientNotFound
	}
	return c, nil
}

type MockEventRepo struct{ Items map[string]models.Event }

func NewMockEventRepo() *MockEventRepo {
	return &MockEventRepo{Items: map[string]models.Event{}}
}

func (m *MockEventRepo) sorted(keep func(models.Event) bool) []models.Event {
	out := make([]models.Event, 0, len(m.Items))
	for _, e := range m.Items {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Fecha != out[j].Fecha {
			return out[i].Fecha < out[j].Fecha
		}
		return out[i].Hora < out[j].Hora
	})
	return out
}

func (m *MockEventRepo) GetAll() ([]models.Event, error) {
	return m.sorted(func(models.Event) bool { return true }), nil
}

func (m *MockEventRepo) ListByParticipant(clientID int64) ([]models.Event, error) {
	return m.sorted(func(e models.Event) bool { return e.HasParticipant(clientID) }), nil
}

func (m *MockEventRepo) ListByCreator(clientID int64) ([]models.Event, error) {
	return m.sorted(func(e models.Event) bool { return e.IDCreador == clientID }), nil
}

func (m *MockEventRepo) GetByID(id string) (models.Event, error) {
	e, ok := m.Items[id]
	if !ok {
		return models.Event{}, models.ErrEventNotFound
	}
	return e, nil
}

func (m *MockEventRepo) Create(e *models.Event) error { m.Items[e.ID] = *e; return nil }

func (m *MockEventRepo) Update(e *models.Event) error {
	if _, ok := m.Items[e.ID]; !ok {
		return models.ErrEventNotFound
	}
	m.Items[e.ID] = *e
	return nil
}

func (m *MockEventRepo) Delete(id string) error { delete(m.Items, id); return nil }

type MockParticipantRepo struct{ Pairs map[string]bool } // "clientId:eventId"

func NewMockParticipantRepo() *MockParticipantRepo {
	return &MockParticipantRepo{Pairs: map[string]bool{}}
}

func (m *MockParticipantRepo) Add(clientID int64, eventID string) error {
	k := key(clientID, eventID)
	if m.Pairs[k] {
		return models.ErrAlreadyMember
	}
	m.Pairs[k] = true
	return nil
}

func (m *MockParticipantRepo) Remove(clientID int64, eventID string) error {
	k := key(clientID, eventID)
	if !m.Pairs[k] {
		return models.ErrNotMember
	}
	delete(m.Pairs, k)
	return nil
}

func (m *MockParticipantRepo) RemoveAllForEvent(eventID string) error {
	for k := range m.Pairs {
		if suffix := ":" + eventID; len(k) > len(suffix) && k[len(k)-len(suffix):] == suffix {
			delete(m.Pairs, k)
		}
	}
	return nil
}

func key(clientID int64, eventID string) string { return fmt.Sprintf("%d:%s", clientID, eventID) }
