// Package cartola fetches the market snapshot feed and maps it onto the
// domain's market records. Decoding is deliberately tolerant: degraded or
// local fallback datasets may omit club ids, carry inline club names, or
// describe positions by label instead of id. Fields that cannot be found
// stay absent; they are never substituted with wrong data.
package cartola

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tcorrea/cartoart/internal/domain/market"
	"github.com/tcorrea/cartoart/internal/domain/position"
)

const defaultTimeout = 10 * time.Second

// Snapshot is one fetch of the market feed.
type Snapshot struct {
	Records []market.Record
	Clubs   []market.Club
}

// Client fetches market snapshots over HTTP.
type Client struct {
	url   string
	httpc *http.Client
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithTimeout bounds each fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpc.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client (used in tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpc = h
		}
	}
}

// NewClient creates a market feed client for the given endpoint.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:   url,
		httpc: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot fetches and decodes the current market snapshot.
func (c *Client) Snapshot(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cartola: build request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("cartola: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("cartola: %w: status %d", ErrUpstream, resp.StatusCode)
	}
	snap, err := Decode(resp.Body)
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// feedAthlete mirrors one market record as the feed serves it. Pointer and
// raw fields keep absent data distinguishable from zero values.
type feedAthlete struct {
	ID          json.Number     `json:"atleta_id"`
	Apelido     string          `json:"apelido"`
	ApelidoAbrv string          `json:"apelido_abreviado"`
	Nome        string          `json:"nome"`
	ClubeID     *json.Number    `json:"clube_id"`
	Clube       json.RawMessage `json:"clube"`
	PosicaoID   *int            `json:"posicao_id"`
	Posicao     string          `json:"posicao"`
	PrecoNum    *float64        `json:"preco_num"`
}

// feedClub mirrors one club entry.
type feedClub struct {
	ID           json.Number `json:"id"`
	Nome         string      `json:"nome"`
	NomeFantasia string      `json:"nome_fantasia"`
	Abreviacao   string      `json:"abreviacao"`
}

// feedPayload is the top-level feed shape. Atletas is kept raw because the
// feed has served it both as an array and as an id-keyed object.
type feedPayload struct {
	Atletas json.RawMessage     `json:"atletas"`
	Clubes  map[string]feedClub `json:"clubes"`
}

// Decode parses a market feed document from r.
func Decode(r io.Reader) (Snapshot, error) {
	var payload feedPayload
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return Snapshot{}, fmt.Errorf("cartola: decode feed: %w", err)
	}

	athletes, err := decodeAthletes(payload.Atletas)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Records: make([]market.Record, 0, len(athletes))}
	for _, a := range athletes {
		snap.Records = append(snap.Records, a.toRecord())
	}
	for id, fc := range payload.Clubes {
		clubID := fc.ID.String()
		if clubID == "" || clubID == "0" {
			clubID = id
		}
		snap.Clubs = append(snap.Clubs, market.Club{
			ID:           clubID,
			Name:         fc.Nome,
			Nickname:     fc.NomeFantasia,
			Abbreviation: fc.Abreviacao,
		})
	}
	return snap, nil
}

// decodeAthletes accepts either an array of records or an id-keyed object.
func decodeAthletes(raw json.RawMessage) ([]feedAthlete, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var list []feedAthlete
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var byID map[string]feedAthlete
	if err := json.Unmarshal(raw, &byID); err != nil {
		return nil, fmt.Errorf("cartola: atletas is neither array nor object: %w", err)
	}
	out := make([]feedAthlete, 0, len(byID))
	for id, a := range byID {
		if a.ID.String() == "" {
			a.ID = json.Number(id)
		}
		out = append(out, a)
	}
	return out, nil
}

func (a feedAthlete) toRecord() market.Record {
	rec := market.Record{
		ID:          a.ID.String(),
		DisplayName: a.Apelido,
		ShortName:   a.ApelidoAbrv,
		FullName:    a.Nome,
	}

	if a.ClubeID != nil {
		rec.ClubID = a.ClubeID.String()
	}
	rec.ClubName = inlineClubName(a.Clube)

	switch {
	case a.PosicaoID != nil:
		if pos, ok := position.FromFeedID(*a.PosicaoID); ok {
			rec.Position = pos
		}
	case a.Posicao != "":
		if pos, ok := position.FromLabel(a.Posicao); ok {
			rec.Position = pos
		}
	}

	if a.PrecoNum != nil {
		rec.Price = decimal.NewNullDecimal(decimal.NewFromFloat(*a.PrecoNum))
	}
	return rec
}

// inlineClubName extracts a club label served inline on the record, either
// as a bare string or as an object with a "nome" field.
func inlineClubName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Nome string `json:"nome"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Nome
	}
	return ""
}
