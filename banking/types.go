package banking

import (
	"bytes"
	"encoding/json"
	"time"
)

// Identity is the provider-defined identity mapping, passed through
// undecoded.
type Identity map[string]any

// Account represents a single payment account. ID and Name are the only
// fields this client interprets; everything else the provider returns is
// preserved losslessly in Extra.
type Account struct {
	ID    string
	Name  string
	Extra map[string]json.RawMessage
}

// UnmarshalJSON decodes the known fields and keeps the rest opaque
func (a *Account) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["id"]; ok {
		if err := json.Unmarshal(v, &a.ID); err != nil {
			return err
		}
		delete(raw, "id")
	}
	if v, ok := raw["name"]; ok {
		if err := json.Unmarshal(v, &a.Name); err != nil {
			return err
		}
		delete(raw, "name")
	}
	a.Extra = raw
	return nil
}

// MarshalJSON reassembles the account into a single flat object
func (a Account) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.fields())
}

// fields returns the account as a flat field map, typed and opaque
// fields merged.
func (a Account) fields() map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(a.Extra)+2)
	for k, v := range a.Extra {
		out[k] = v
	}
	id, _ := json.Marshal(a.ID)
	name, _ := json.Marshal(a.Name)
	out["id"] = id
	out["name"] = name
	return out
}

// Balance is one balance entry for an account.
type Balance struct {
	Amount   float64
	Currency string
	Extra    map[string]json.RawMessage
}

// UnmarshalJSON decodes the known fields and keeps the rest opaque
func (b *Balance) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["amount"]; ok {
		if err := json.Unmarshal(v, &b.Amount); err != nil {
			return err
		}
		delete(raw, "amount")
	}
	if v, ok := raw["currency"]; ok {
		if err := json.Unmarshal(v, &b.Currency); err != nil {
			return err
		}
		delete(raw, "currency")
	}
	b.Extra = raw
	return nil
}

// MarshalJSON reassembles the balance into a single flat object
func (b Balance) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(b.Extra)+2)
	for k, v := range b.Extra {
		out[k] = v
	}
	amount, _ := json.Marshal(b.Amount)
	currency, _ := json.Marshal(b.Currency)
	out["amount"] = amount
	out["currency"] = currency
	return json.Marshal(out)
}

// Balances is the balance resource of an account. The service returns
// either a single object or a non-empty array; both decode into the same
// slice. The first entry is the current balance.
type Balances []Balance

// UnmarshalJSON accepts both the object and the array form
func (bs *Balances) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []Balance
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*bs = list
		return nil
	}
	var single Balance
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*bs = Balances{single}
	return nil
}

// Current returns the current balance, defined as the first entry.
func (bs Balances) Current() (Balance, bool) {
	if len(bs) == 0 {
		return Balance{}, false
	}
	return bs[0], true
}

// Transaction represents a single transaction. Only Amount is
// interpreted; ordering is whatever the service returned.
type Transaction struct {
	Amount float64
	Extra  map[string]json.RawMessage
}

// UnmarshalJSON decodes the known fields and keeps the rest opaque
func (t *Transaction) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["amount"]; ok {
		if err := json.Unmarshal(v, &t.Amount); err != nil {
			return err
		}
		delete(raw, "amount")
	}
	t.Extra = raw
	return nil
}

// MarshalJSON reassembles the transaction into a single flat object
func (t Transaction) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(t.Extra)+1)
	for k, v := range t.Extra {
		out[k] = v
	}
	amount, _ := json.Marshal(t.Amount)
	out["amount"] = amount
	return json.Marshal(out)
}

// Field decodes a named opaque field into a string. It returns an empty
// string when the field is absent or not a JSON string.
func (t Transaction) Field(name string) string {
	v, ok := t.Extra[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}

// CollectError is the per-account failure marker attached by the
// collector instead of aborting the whole collection.
type CollectError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// AccountData is one account in an aggregated result: the account's own
// fields merged with its balances and transactions, or an error marker
// when the sub-fetches failed.
type AccountData struct {
	Account      Account
	Balances     Balances
	Transactions []Transaction
	Error        *CollectError
}

// MarshalJSON flattens the account fields and the fetched sub-resources
// into one object, matching the merged shape consumers expect.
func (d AccountData) MarshalJSON() ([]byte, error) {
	out := d.Account.fields()
	if d.Error != nil {
		v, err := json.Marshal(d.Error)
		if err != nil {
			return nil, err
		}
		out["error"] = v
		return json.Marshal(out)
	}
	balances, err := json.Marshal(d.Balances)
	if err != nil {
		return nil, err
	}
	transactions, err := json.Marshal(d.Transactions)
	if err != nil {
		return nil, err
	}
	out["balances"] = balances
	out["transactions"] = transactions
	return json.Marshal(out)
}

// AggregatedResult is the nested snapshot produced by Collector.CollectAll.
type AggregatedResult struct {
	RunID       string        `json:"run_id"`
	CollectedAt time.Time     `json:"collected_at"`
	Identity    Identity      `json:"identity"`
	Accounts    []AccountData `json:"accounts"`
}
