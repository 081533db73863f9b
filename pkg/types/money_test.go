package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyMarshalsAsNumber(t *testing.T) {
	out, err := json.Marshal(map[string]Money{"total": NewMoney(decimal.RequireFromString("14680.00"))})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"total":14680}` {
		t.Fatalf("unexpected json %s", out)
	}
}

func TestMoneyUnmarshal(t *testing.T) {
	type payload struct {
		Amount Money `json:"amount"`
	}

	cases := map[string]string{
		`{"amount": 1468}`:     "1468",
		`{"amount": 10.5}`:     "10.5",
		`{"amount": "2230"}`:   "2230",
		`{"amount": " 3.25 "}`: "3.25",
	}
	for body, want := range cases {
		var got payload
		if err := json.Unmarshal([]byte(body), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", body, err)
		}
		if !got.Amount.Equal(decimal.RequireFromString(want)) {
			t.Fatalf("body %s: expected %s got %s", body, want, got.Amount)
		}
	}

	for _, body := range []string{`{"amount": "abc"}`, `{"amount": null}`, `{"amount": true}`, `{"amount": ""}`} {
		var got payload
		if err := json.Unmarshal([]byte(body), &got); err == nil {
			t.Fatalf("expected error for %s", body)
		}
	}
}
