package groups_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/huddle/internal/app/features/groups"
	groupstore "github.com/dalemusser/huddle/internal/app/store/groups"
	"github.com/dalemusser/huddle/internal/app/system/membersync"
	"github.com/dalemusser/huddle/internal/domain/models"
	"github.com/dalemusser/huddle/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, db *mongo.Database) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	sync := membersync.New(groupstore.New(db), nil, logger)
	return groups.Routes(groups.NewHandler(db, sync, logger))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleCreate_ThenServeGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newTestRouter(t, db)

	rec := do(t, router, http.MethodPost, "/",
		`{"created_by":"u-1","name":"<b>Chess</b> Club","description":"Weekly games"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d, body %s", rec.Code, rec.Body.String())
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	rec = do(t, router, http.MethodGet, "/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: got %d, body %s", rec.Code, rec.Body.String())
	}
	var g models.Group
	if err := json.Unmarshal(rec.Body.Bytes(), &g); err != nil {
		t.Fatalf("failed to parse group: %v", err)
	}
	if g.Name != "Chess Club" {
		t.Errorf("Name: got %q, want %q (markup stripped)", g.Name, "Chess Club")
	}
	if !g.IsActive || g.CreatedBy != "u-1" {
		t.Errorf("unexpected group: %+v", g)
	}
}

func TestHandleCreate_RequiresCreator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newTestRouter(t, db)

	rec := do(t, router, http.MethodPost, "/", `{"name":"No Owner"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestServeGroup_NotFoundAndBadID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	router := newTestRouter(t, db)

	if rec := do(t, router, http.MethodGet, "/"+primitive.NewObjectID().Hex(), ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing group: got %d, want %d", rec.Code, http.StatusNotFound)
	}
	if rec := do(t, router, http.MethodGet, "/not-an-id", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServeList_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	router := newTestRouter(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := testutil.NewUserID()
	bob := testutil.NewUserID()
	fixtures.CreateGroup(ctx, "Alice's", alice)
	fixtures.CreateGroup(ctx, "Bob's", bob, models.Member{UserID: alice, Name: "Alice"})

	cases := []struct {
		query string
		want  int
	}{
		{"", 2},
		{"?creator=" + alice, 1},
		{"?member=" + alice, 1},
		{"?member=" + bob, 0},
	}
	for _, tc := range cases {
		rec := do(t, router, http.MethodGet, "/"+tc.query, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("list %q: got %d", tc.query, rec.Code)
		}
		var resp struct {
			Groups []models.Group `json:"groups"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse list: %v", err)
		}
		if len(resp.Groups) != tc.want {
			t.Errorf("list %q: got %d groups, want %d", tc.query, len(resp.Groups), tc.want)
		}
	}

	if rec := do(t, router, http.MethodGet, "/?creator=a&member=b", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("both filters: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	router := newTestRouter(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fixtures.CreateGroup(ctx, "Before", testutil.NewUserID())

	rec := do(t, router, http.MethodPatch, "/"+g.ID.Hex(), `{"name":"After","max_members":12}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update: got %d, body %s", rec.Code, rec.Body.String())
	}

	found := fixtures.ReloadGroup(ctx, g.ID)
	if found.Name != "After" || found.MaxMembers != 12 {
		t.Errorf("unexpected group after update: %+v", found)
	}

	if rec := do(t, router, http.MethodPatch, "/"+g.ID.Hex(), `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty update: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHandleDeactivate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	router := newTestRouter(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fixtures.CreateGroup(ctx, "Bye", testutil.NewUserID())

	for i := 0; i < 2; i++ {
		if rec := do(t, router, http.MethodDelete, "/"+g.ID.Hex(), ""); rec.Code != http.StatusNoContent {
			t.Fatalf("deactivate #%d: got %d", i+1, rec.Code)
		}
	}

	if found := fixtures.ReloadGroup(ctx, g.ID); found.IsActive {
		t.Error("expected group to be inactive")
	}
	if rec := do(t, router, http.MethodGet, "/"+g.ID.Hex(), ""); rec.Code != http.StatusOK {
		t.Errorf("soft-deleted group should still be readable, got %d", rec.Code)
	}
}

func TestHandleAddMember(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	router := newTestRouter(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g := fixtures.CreateGroup(ctx, "Joinable", testutil.NewUserID())
	body := `{"user_id":"u-9","name":"Nine","bio":"hello"}`

	if rec := do(t, router, http.MethodPost, "/"+g.ID.Hex()+"/members", body); rec.Code != http.StatusNoContent {
		t.Fatalf("add: got %d, body %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, router, http.MethodPost, "/"+g.ID.Hex()+"/members", body); rec.Code != http.StatusConflict {
		t.Errorf("duplicate add: got %d, want %d", rec.Code, http.StatusConflict)
	}
	if rec := do(t, router, http.MethodPost, "/"+primitive.NewObjectID().Hex()+"/members", body); rec.Code != http.StatusNotFound {
		t.Errorf("missing group: got %d, want %d", rec.Code, http.StatusNotFound)
	}
	if rec := do(t, router, http.MethodPost, "/"+g.ID.Hex()+"/members", `{"name":"Anon"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing user_id: got %d, want %d", rec.Code, http.StatusBadRequest)
	}

	found := fixtures.ReloadGroup(ctx, g.ID)
	want := models.Member{UserID: "u-9", Name: "Nine", Bio: "hello"}
	if len(found.Members) != 1 || found.Members[0] != want {
		t.Errorf("members: got %+v, want [%+v]", found.Members, want)
	}
}

func TestHandleEnsureCreator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	router := newTestRouter(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := testutil.NewUserID()
	g := fixtures.CreateGroup(ctx, "Mine", creator)

	body := `{"user_id":"` + creator + `","email":"dee@example.com"}`
	if rec := do(t, router, http.MethodPost, "/"+g.ID.Hex()+"/creator", body); rec.Code != http.StatusNoContent {
		t.Fatalf("ensure creator: got %d, body %s", rec.Code, rec.Body.String())
	}

	found := fixtures.ReloadGroup(ctx, g.ID)
	if len(found.Members) != 1 || found.Members[0].Name != "dee" {
		t.Errorf("members: got %+v", found.Members)
	}

	// Missing group is silently accepted
	if rec := do(t, router, http.MethodPost, "/"+primitive.NewObjectID().Hex()+"/creator", body); rec.Code != http.StatusNoContent {
		t.Errorf("missing group: got %d, want %d", rec.Code, http.StatusNoContent)
	}
}
