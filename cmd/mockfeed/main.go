// Command mockfeed serves synthetic market and valuation feeds for local
// development. It speaks the same wire shapes the production upstreams use,
// so the service can be pointed at it with no code changes:
//
//	CARTOART_MARKET_URL=http://localhost:9090/atletas/mercado \
//	CARTOART_VALUATION_URL=http://localhost:9090/valuation \
//	CARTOART_VALUATION_TOKEN=dev go run ./cmd
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Default configuration constants.
const (
	defaultAddr          = ":9090"
	defaultToken         = "dev"
	defaultPlayersPerPos = 3
	defaultSeed          = 1
)

type club struct {
	ID           int    `json:"id"`
	Nome         string `json:"nome"`
	NomeFantasia string `json:"nome_fantasia"`
	Abreviacao   string `json:"abreviacao"`
}

type athlete struct {
	ID        int     `json:"atleta_id"`
	Apelido   string  `json:"apelido"`
	Nome      string  `json:"nome"`
	ClubeID   int     `json:"clube_id"`
	PosicaoID int     `json:"posicao_id"`
	PrecoNum  float64 `json:"preco_num"`
}

type marketPayload struct {
	Atletas []athlete       `json:"atletas"`
	Clubes  map[string]club `json:"clubes"`
}

type valuationEntry struct {
	MinimoParaValorizar float64 `json:"minimo_para_valorizar"`
}

var clubs = []club{
	{ID: 262, Nome: "Flamengo", NomeFantasia: "Flamengo", Abreviacao: "FLA"},
	{ID: 275, Nome: "Palmeiras", NomeFantasia: "Palmeiras", Abreviacao: "PAL"},
	{ID: 282, Nome: "Atlético-MG", NomeFantasia: "Atlético-MG", Abreviacao: "CAM"},
	{ID: 266, Nome: "Fluminense", NomeFantasia: "Fluminense", Abreviacao: "FLU"},
}

var firstNames = []string{
	"Pedro", "Gabriel", "Lucas", "Matheus", "Rafael", "Bruno",
	"Everton", "Hulk", "Arrascaeta", "Walter", "Germán", "João",
}

var lastNames = []string{
	"", "Silva", "Souza", "Ribeiro", "Cano", "Clar", "Henrique",
	"Pereira", "Guimarães",
}

// generate builds a deterministic market for the given seed. Every player
// also gets a valuation entry keyed by athlete id.
func generate(seed int64, perPos int) (marketPayload, map[string]valuationEntry) {
	rng := rand.New(rand.NewSource(seed))

	payload := marketPayload{Clubes: make(map[string]club, len(clubs))}
	valuation := make(map[string]valuationEntry)

	id := 100000
	for _, c := range clubs {
		payload.Clubes[strconv.Itoa(c.ID)] = c
		for pos := 1; pos <= 6; pos++ {
			n := perPos
			if pos == 1 || pos == 6 {
				n = 1
			}
			for i := 0; i < n; i++ {
				id++
				first := firstNames[rng.Intn(len(firstNames))]
				last := lastNames[rng.Intn(len(lastNames))]
				name := first
				if last != "" {
					name = first + " " + last
				}
				price := 1.0 + rng.Float64()*25.0
				payload.Atletas = append(payload.Atletas, athlete{
					ID:        id,
					Apelido:   name,
					Nome:      name,
					ClubeID:   c.ID,
					PosicaoID: pos,
					PrecoNum:  round2(price),
				})
				valuation[strconv.Itoa(id)] = valuationEntry{
					MinimoParaValorizar: round2(rng.Float64() * 10.0),
				}
			}
		}
	}
	return payload, valuation
}

func round2(v float64) float64 {
	return float64(int(v*100)) / 100
}

func main() {
	var (
		addr   = flag.String("addr", defaultAddr, "Listen address")
		token  = flag.String("token", defaultToken, "Bearer token the valuation endpoint requires")
		perPos = flag.Int("players", defaultPlayersPerPos, "Outfield players per position per club")
		seed   = flag.Int64("seed", defaultSeed, "Random seed for the generated market")
	)
	flag.Parse()

	market, valuation := generate(*seed, *perPos)

	mux := http.NewServeMux()
	mux.HandleFunc("/atletas/mercado", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, market)
	})
	mux.HandleFunc("/valuation", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+*token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeJSON(w, http.StatusOK, valuation)
	})

	fmt.Printf("mockfeed: serving %d players across %d clubs on %s\n",
		len(market.Atletas), len(clubs), *addr)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		os.Stderr.WriteString("mockfeed failed: " + err.Error() + "\n")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
