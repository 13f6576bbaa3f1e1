package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ericogr/agent-arena/internal/chatbot"
	"github.com/ericogr/agent-arena/internal/config"
	"github.com/ericogr/agent-arena/internal/engine"
	"github.com/ericogr/agent-arena/internal/events"
	"github.com/ericogr/agent-arena/internal/game"
	"github.com/ericogr/agent-arena/internal/service"
	"github.com/ericogr/agent-arena/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := storage.OpenAndMigrate(dsn, []game.Agent{
		{Name: "Spark", Owner: "alice", Traits: game.Traits{Strength: 5, Speed: 5, Intelligence: 5}, Energy: 100},
		{Name: "Titan", Owner: "bob", Traits: game.Traits{Strength: 3, Speed: 3, Intelligence: 3}, Energy: 100},
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	svc := service.New(service.Deps{
		Repo:   storage.NewSQLiteRepository(db),
		Engine: engine.New(engine.DefaultRules()),
		RNG:    engine.NewSeededSource(1),
		Events: events.Nop{},
		Chat:   chatbot.New(chatbot.Config{}),
		Settings: service.Settings{
			Shop:     service.ShopPrices{RefillEnergy: 50, XPBoost: 100, RareTraitRoll: 200, XPBoostFor: 24 * time.Hour},
			Currency: "usd",
			CoinPackages: []config.CoinPackage{
				{ID: "starter", Coins: 100, PriceUSD: decimal.RequireFromString("0.99")},
			},
			ChatHistoryLimit: 20,
		},
	})
	return NewRouter(NewHandler(svc, nil))
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestHealthAndRoot(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/health", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"online"`) {
		t.Fatalf("unexpected health: %d %s", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodGet, "/", nil); w.Code != http.StatusOK {
		t.Fatalf("root returned %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/nope", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestAgentCRUD(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/agents", map[string]interface{}{
		"name":   "Nova",
		"owner":  "carol",
		"traits": map[string]int{"strength": 8, "speed": 8, "intelligence": 8},
		"power":  999,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", w.Code, w.Body.String())
	}
	var created agentResponse
	decode(t, w, &created)
	if created.Rarity != game.RarityCommon || created.ComputedPower != 56 || created.Power != 56 {
		t.Fatalf("unexpected created agent: %+v", created)
	}

	w = do(t, r, http.MethodPut, "/agents/"+itoa(created.ID), map[string]interface{}{
		"traits":    map[string]int{"strength": 2, "speed": 2, "intelligence": 2},
		"rareTrait": map[string]interface{}{"name": "invisible", "powerBonus": 1000},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update returned %d: %s", w.Code, w.Body.String())
	}
	var updated agentResponse
	decode(t, w, &updated)
	if updated.Rarity != game.RarityCommon || updated.RareTrait == nil || updated.ComputedPower != 14+10 {
		t.Fatalf("unexpected updated agent: %+v", updated)
	}

	w = do(t, r, http.MethodPut, "/agents/"+itoa(created.ID), map[string]interface{}{"rareTrait": nil})
	decode(t, w, &updated)
	if updated.RareTrait != nil {
		t.Fatalf("rare trait should be cleared")
	}

	if w := do(t, r, http.MethodDelete, "/agents/"+itoa(created.ID), nil); w.Code != http.StatusOK {
		t.Fatalf("delete returned %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/agents/"+itoa(created.ID), nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/agents/abc", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", w.Code)
	}
}

func TestCreateAgentRejectsInvalidFields(t *testing.T) {
	r := newTestRouter(t)
	bodies := []map[string]interface{}{
		{"name": "Broken", "traits": map[string]int{"strength": 11, "speed": 1, "intelligence": 1}},
		{"name": "Broken", "energy": 500},
		{"name": "Broken", "rarity": "legendary"},
		{"name": "Broken", "rareTrait": map[string]interface{}{"name": "x", "powerBonus": 1000}},
	}
	for i, body := range bodies {
		if w := do(t, r, http.MethodPost, "/agents", body); w.Code != http.StatusBadRequest {
			t.Fatalf("case %d: expected 400, got %d %s", i, w.Code, w.Body.String())
		}
	}
}

func TestCreateAgentKeepsManualRarity(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/agents", map[string]interface{}{
		"name":   "Manual",
		"traits": map[string]int{"strength": 9, "speed": 9, "intelligence": 9},
		"rarity": "common",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", w.Code, w.Body.String())
	}
	var a agentResponse
	decode(t, w, &a)
	if a.Rarity != game.RarityCommon {
		t.Fatalf("expected common, got %s", a.Rarity)
	}

	w = do(t, r, http.MethodPut, "/agents/"+itoa(a.ID), map[string]interface{}{"forSale": true, "price": 30})
	decode(t, w, &a)
	if !a.ForSale || a.Price != 30 {
		t.Fatalf("expected listing, got %+v", a)
	}
	w = do(t, r, http.MethodPut, "/agents/"+itoa(a.ID), map[string]interface{}{"forSale": false})
	decode(t, w, &a)
	if a.ForSale || a.Price != 0 {
		t.Fatalf("unlisting must clear the price, got %+v", a)
	}
}

func TestBreedEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/breed", map[string]interface{}{"parent1Id": 1, "parent2Id": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("breed returned %d: %s", w.Code, w.Body.String())
	}
	var child breedResponse
	decode(t, w, &child)
	if !strings.HasPrefix(child.Name, "Baby_Spark_Titan_") || child.Energy != 100 {
		t.Fatalf("unexpected child: %+v", child)
	}
	if len(child.Parents) != 2 || child.Parents[0].Energy != 90 || child.Parents[0].Gene != 1 {
		t.Fatalf("unexpected parents: %+v", child.Parents)
	}

	w = do(t, r, http.MethodPost, "/api/breed", map[string]interface{}{"parent1Id": 1})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without parent2, got %d", w.Code)
	}
	w = do(t, r, http.MethodPost, "/api/breed", map[string]interface{}{"parent1Id": 1, "parent2Id": 99})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown parent, got %d", w.Code)
	}
}

func TestBreedRequiresCoinsWhenUserGiven(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/breed", map[string]interface{}{"parent1Id": 1, "parent2Id": 2, "userId": "alice"})
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "Insufficient coins") {
		t.Fatalf("expected insufficient coins, got %d %s", w.Code, w.Body.String())
	}
}

func TestBattleEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/battle", map[string]interface{}{"agentA": 1, "agentB": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("battle returned %d: %s", w.Code, w.Body.String())
	}
	var res struct {
		Winner       agentResponse  `json:"winner"`
		Loser        agentResponse  `json:"loser"`
		PowerWinner  int            `json:"powerWinner"`
		PowerLoser   int            `json:"powerLoser"`
		XPGainWinner int            `json:"xpGainWinner"`
		CoinRewards  map[string]int `json:"coinRewards"`
		Luck         map[string]any `json:"luck"`
	}
	decode(t, w, &res)
	if res.Winner.Name != "Spark" || res.PowerWinner != 35 || res.PowerLoser != 21 {
		t.Fatalf("unexpected battle: %+v", res)
	}
	if res.XPGainWinner != 10 || res.Winner.XP != 10 || res.Loser.XP != 2 {
		t.Fatalf("unexpected xp: %+v", res)
	}
	if res.CoinRewards["winner"] != 5 || res.CoinRewards["loser"] != 1 || res.Luck != nil {
		t.Fatalf("unexpected rewards or luck: %+v", res)
	}

	w = do(t, r, http.MethodGet, "/api/payment/balance/alice", nil)
	if !strings.Contains(w.Body.String(), `"coins":5`) {
		t.Fatalf("winner owner not paid: %s", w.Body.String())
	}

	w = do(t, r, http.MethodPost, "/api/battle/arena", map[string]interface{}{"agentA": 1, "agentB": 2})
	decode(t, w, &res)
	if res.Luck == nil {
		t.Fatalf("arena battle must report luck")
	}

	if w := do(t, r, http.MethodPost, "/api/battle", map[string]interface{}{"agentA": 1}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLeaderboardAndExport(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodGet, "/api/agents/leaderboard?limit=1", nil)
	var top []agentResponse
	decode(t, w, &top)
	if len(top) != 1 || top[0].Name != "Spark" {
		t.Fatalf("unexpected leaderboard: %+v", top)
	}

	w = do(t, r, http.MethodGet, "/api/agents/export.csv", nil)
	if w.Code != http.StatusOK || !strings.HasPrefix(w.Header().Get("Content-Type"), "text/csv") {
		t.Fatalf("unexpected export: %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	if lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n"); len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d lines", len(lines))
	}
}

func TestPaymentShopAndMarketFlow(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/payment/create", map[string]interface{}{"userId": "carol", "amount": "4.99"})
	if w.Code != http.StatusOK {
		t.Fatalf("create payment returned %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		PaymentID     uint                  `json:"paymentId"`
		PaymentIntent service.PaymentIntent `json:"paymentIntent"`
	}
	decode(t, w, &created)
	if created.PaymentIntent.Amount != 499 {
		t.Fatalf("expected 499 cents, got %d", created.PaymentIntent.Amount)
	}

	confirm := map[string]interface{}{"paymentId": created.PaymentID, "userId": "carol", "coins": 550}
	if w := do(t, r, http.MethodPost, "/api/payment/confirm", confirm); w.Code != http.StatusOK {
		t.Fatalf("confirm returned %d: %s", w.Code, w.Body.String())
	}
	if w := do(t, r, http.MethodPost, "/api/payment/confirm", confirm); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on second confirm, got %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/agents/2/refill-energy", map[string]string{"userId": "carol"})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"coins":500`) {
		t.Fatalf("unexpected refill: %d %s", w.Code, w.Body.String())
	}

	if w := do(t, r, http.MethodPost, "/agents/1/list-for-sale", map[string]interface{}{"userId": "bob", "price": 100}); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner listing, got %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/agents/1/list-for-sale", map[string]interface{}{"userId": "alice", "price": 100}); w.Code != http.StatusOK {
		t.Fatalf("listing returned %d: %s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodGet, "/api/marketplace", nil)
	var market []agentResponse
	decode(t, w, &market)
	if len(market) != 1 || market[0].ID != 1 {
		t.Fatalf("unexpected marketplace: %+v", market)
	}

	w = do(t, r, http.MethodPost, "/agents/1/purchase", map[string]string{"buyerId": "carol"})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"coins":400`) {
		t.Fatalf("unexpected purchase: %d %s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodGet, "/api/payment/balance/alice", nil)
	if !strings.Contains(w.Body.String(), `"coins":100`) {
		t.Fatalf("seller not paid: %s", w.Body.String())
	}
	w = do(t, r, http.MethodGet, "/api/payment/history/carol", nil)
	var history []game.Payment
	decode(t, w, &history)
	if len(history) != 1 || history[0].Status != game.PaymentCompleted {
		t.Fatalf("unexpected history: %+v", history)
	}
}

func TestChatOffline(t *testing.T) {
	r := newTestRouter(t)
	w := do(t, r, http.MethodPost, "/api/chat", map[string]interface{}{"agentId": 1, "message": "hello"})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"assistant"`) {
		t.Fatalf("unexpected chat: %d %s", w.Code, w.Body.String())
	}
	w = do(t, r, http.MethodGet, "/api/chat/1", nil)
	var msgs []game.ChatMessage
	decode(t, w, &msgs)
	if len(msgs) != 2 || msgs[0].Role != game.ChatRoleUser {
		t.Fatalf("unexpected transcript: %+v", msgs)
	}
	if w := do(t, r, http.MethodPost, "/api/chat", map[string]interface{}{"agentId": 1}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty message, got %d", w.Code)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
