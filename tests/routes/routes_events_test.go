package tests

import (
	"encoding/json"
	"net/http"
	"reflect"
	"testing"

	"eventmanager/models"
)

type eventEnvelope struct {
	Event models.EventView `json:"event"`
}

func decodeEvent(t *testing.T, body []byte) models.EventView {
	t.Helper()
	var env eventEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode event envelope: %v; body=%s", err, body)
	}
	return env.Event
}

// Creating an event enrolls exactly the creator; tags and restrictions come
// back verbatim.
func TestCreateEvent_CreatorAutoEnrolled(t *testing.T) {
	deps := setupServerWithDeps(t)
	seedClient(deps, 7, "creator")
	token := authToken(t, 7)

	body := `{"fecha":"2027-11-05","hora":"18:00","lugar":"Sevilla",
		"restricciones":{"idiomaRequerido":"es,en","edad_minima":18,"plazasDisponibles":50},
		"tags":["musica","verano"],"titulo":"Prueba"}`
	w := doReq(deps.s, http.MethodPost, "/events", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d; body=%s", w.Code, w.Body.String())
	}

	view := decodeEvent(t, w.Body.Bytes())
	if view.ID == "" {
		t.Fatalf("empty event id")
	}
	if !reflect.DeepEqual(view.ParticipantesIDs, []int64{7}) {
		t.Fatalf("want participantesIds [7], got %v", view.ParticipantesIDs)
	}
	if !reflect.DeepEqual(view.Tags, []string{"musica", "verano"}) {
		t.Fatalf("want tags [musica verano], got %v", view.Tags)
	}
	// JSON numbers decode as float64
	want := models.Restrictions{"idiomaRequerido": "es,en", "edad_minima": float64(18), "plazasDisponibles": float64(50)}
	if !reflect.DeepEqual(view.Restricciones, want) {
		t.Fatalf("restricciones not preserved: %v", view.Restricciones)
	}

	// the creator pair also landed in the join table
	if !deps.pr.Pairs["7:"+view.ID] {
		t.Fatalf("creator enrollment missing from join table: %v", deps.pr.Pairs)
	}
}

// An event created without tags or restrictions projects [] and {}, never null.
func TestCreateEvent_NoTags_EmptySequences(t *testing.T) {
	deps := setupServerWithDeps(t)
	seedClient(deps, 7, "creator")
	token := authToken(t, 7)

	body := `{"fecha":"2027-11-05","hora":"18:00","lugar":"Sevilla","titulo":"Prueba"}`
	w := doReq(deps.s, http.MethodPost, "/events", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("want 201, got %d; body=%s", w.Code, w.Body.String())
	}

	var raw struct {
		Event map[string]json.RawMessage `json:"event"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw.Event["tags"]) != "[]" {
		t.Fatalf("want tags [], got %s", raw.Event["tags"])
	}
	if string(raw.Event["restricciones"]) != "{}" {
		t.Fatalf("want restricciones {}, got %s", raw.Event["restricciones"])
	}
}

func TestCreateEvent_UnknownCreator_404(t *testing.T) {
	deps := setupServerWithDeps(t)
	token := authToken(t, 99) // no such client

	body := `{"fecha":"2027-11-05","hora":"18:00","lugar":"Sevilla","titulo":"Prueba"}`
	w := doReq(deps.s, http.MethodPost, "/events", body, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d; body=%s", w.Code, w.Body.String())
	}
}

// join twice: second call conflicts and the roster stays {7,9}
func TestJoinEvent_ThenDuplicate_409(t *testing.T) {
	deps := setupServerWithDeps(t)
	seedClient(deps, 7, "creator")
	seedClient(deps, 9, "joiner")
	deps.er.Items["e1"] = models.Event{ID: "e1", Fecha: "2027-11-05", Hora: "18:00", Lugar: "Sevilla", Titulo: "Prueba", IDCreador: 7, ParticipantesIDs: []int64{7}}
	token := authToken(t, 9)

	w := doReq(deps.s, http.MethodPost, "/events/join", `{"idEvento":"e1","idParticipante":9}`, token)
	if w.Code != http.StatusOK {
		t.Fatalf("join want 200, got %d; body=%s", w.Code, w.Body.String())
	}
	view := decodeEvent(t, w.Body.Bytes())
	if !reflect.DeepEqual(view.ParticipantesIDs, []int64{7, 9}) {
		t.Fatalf("want roster [7 9], got %v", view.ParticipantesIDs)
	}

	w = doReq(deps.s, http.MethodPost, "/events/join", `{"idEvento":"e1","idParticipante":9}`, token)
	if w.Code != http.StatusConflict {
		t.Fatalf("dup join want 409, got %d; body=%s", w.Code, w.Body.String())
	}
	if got := deps.er.Items["e1"].ParticipantesIDs; !reflect.DeepEqual(got, []int64{7, 9}) {
		t.Fatalf("failed join must not change roster, got %v", got)
	}
}

func TestJoinEvent_EventNotFound_404(t *testing.T) {
	deps := setupServerWithDeps(t)
	seedClient(deps, 9, "joiner")

	w := doReq(deps.s, http.MethodPost, "/events/join", `{"idEvento":"nope","idParticipante":9}`, authToken(t, 9))
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d; body=%s", w.Code, w.Body.String())
	}
}

func TestJoinEvent_ClientNotFound_404(t *testing.T) {
	deps := setupServerWithDeps(t)
	deps.er.Items["e1"] = models.Event{ID: "e1", IDCreador: 7, ParticipantesIDs: []int64{7}}

	w := doReq(deps.s, http.MethodPost, "/events/join", `{"idEvento":"e1","idParticipante":9}`, authToken(t, 9))
	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d; body=%s", w.Code, w.Body.String())
	}
}

// leave then leave again: second call conflicts, roster stays {7}
func TestLeaveEvent_ThenNotMember_409(t *testing.T) {
	deps := setupServerWithDeps(t)
	seedClient(deps, 7, "creator")
	seedClient(deps, 9, "joiner")
	deps.er.Items["e1"] = models.Event{ID: "e1", IDCreador: 7, ParticipantesIDs: []int64{7, 9}}
	deps.pr.Pairs["7:e1"] = true
	deps.pr.Pairs["9:e1"] = true
	token := authToken(t, 9)

	w := doReq(deps.s, http.MethodPost, "/events/e1/leave", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("leave want 200, got %d; body=%s", w.Code, w.Body.String())
	}
	view := decodeEvent(t, w.Body.Bytes())
	if !reflect.DeepEqual(view.ParticipantesIDs, []int64{7}) {
		t.Fatalf("want roster [7], got %v", view.ParticipantesIDs)
	}

	w = doReq(deps.s, http.MethodPost, "/events/e1/leave", "", token)
	if w.Code != http.StatusConflict {
		t.Fatalf("second leave want 409, got %d; body=%s", w.Code, w.Body.String())
	}
	if got := deps.er.Items["e1"].ParticipantesIDs; !reflect.DeepEqual(got, []int64{7}) {
		t.Fatalf("failed leave must not change roster, got %v", got)
	}
}

// GET /events returns views ordered by (fecha, hora) ascending
func TestGetEvents_SortedBySchedule(t *testing.T) {
	deps := setupServerWithDeps(t)
	deps.er.Items["late"] = models.Event{ID: "late", Fecha: "2027-12-01", Hora: "10:00", Titulo: "b"}
	deps.er.Items["early"] = models.Event{ID: "early", Fecha: "2027-11-05", Hora: "18:00", Titulo: "a"}
	deps.er.Items["mid"] = models.Event{ID: "mid", Fecha: "2027-12-01", Hora: "09:00", Titulo: "c"}

	w := doReq(deps.s, http.MethodGet, "/events", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d; body=%s", w.Code, w.Body.String())
	}
	var views []models.EventView
	if err := json.Unmarshal(w.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var ids []string
	for _, v := range views {
		ids = append(ids, v.ID)
	}
	if !reflect.DeepEqual(ids, []string{"early", "mid", "late"}) {
		t.Fatalf("want schedule order [early mid late], got %v", ids)
	}
}

func TestMyEvents_ScopedToParticipant(t *testing.T) {
	deps := setupServerWithDeps(t)
	seedClient(deps, 9, "joiner")
	deps.er.Items["in"] = models.Event{ID: "in", Fecha: "2027-11-05", Hora: "18:00", IDCreador: 7, ParticipantesIDs: []int64{7, 9}}
	deps.er.Items["out"] = models.Event{ID: "out", Fecha: "2027-11-06", Hora: "18:00", IDCreador: 7, ParticipantesIDs: []int64{7}}

	w := doReq(deps.s, http.MethodGet, "/events/my-events", "", authToken(t, 9))
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d; body=%s", w.Code, w.Body.String())
	}
	var views []models.EventView
	if err := json.Unmarshal(w.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(views) != 1 || views[0].ID != "in" {
		t.Fatalf("want only [in], got %+v", views)
	}
}

func TestMyCreated_ScopedToCreator(t *testing.T) {
	deps := setupServerWithDeps(t)
	seedClient(deps, 7, "creator")
	deps.er.Items["mine"] = models.Event{ID: "mine", Fecha: "2027-11-05", Hora: "18:00", IDCreador: 7, ParticipantesIDs: []int64{7}}
	deps.er.Items["other"] = models.Event{ID: "other", Fecha: "2027-11-06", Hora: "18:00", IDCreador: 8, ParticipantesIDs: []int64{7, 8}}

	w := doReq(deps.s, http.MethodGet, "/events/my-created", "", authToken(t, 7))
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d; body=%s", w.Code, w.Body.String())
	}
	var views []models.EventView
	if err := json.Unmarshal(w.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(views) != 1 || views[0].ID != "mine" {
		t.Fatalf("want only [mine], got %+v", views)
	}
}

// reading an event twice yields byte-identical projections
func TestGetEvent_ProjectionStable(t *testing.T) {
	deps := setupServerWithDeps(t)
	deps.er.Items["e1"] = models.Event{ID: "e1", Fecha: "2027-11-05", Hora: "18:00", Lugar: "Sevilla", Titulo: "Prueba", IDCreador: 7, ParticipantesIDs: []int64{7}}

	w1 := doReq(deps.s, http.MethodGet, "/events/e1", "", "")
	w2 := doReq(deps.s, http.MethodGet, "/events/e1", "", "")
	if w1.Code != http.StatusOK || w2.Code != http.StatusOK {
		t.Fatalf("want 200/200, got %d/%d", w1.Code, w2.Code)
	}
	if w1.Body.String() != w2.Body.String() {
		t.Fatalf("projection not stable:\n%s\n%s", w1.Body.String(), w2.Body.String())
	}
}

// an event stored with nil tags still projects an empty array
func TestGetEvent_TagsNormalized(t *testing.T) {
	deps := setupServerWithDeps(t)
	deps.er.Items["e1"] = models.Event{ID: "e1", Fecha: "2027-11-05", Hora: "18:00", IDCreador: 7}

	w := doReq(deps.s, http.MethodGet, "/events/e1", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d; body=%s", w.Code, w.Body.String())
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(raw["tags"]) != "[]" {
		t.Fatalf("want tags [], got %s", raw["tags"])
	}
}
