// Package assistant integrates the generative location assistant: a
// free-text query anchored to a fixed geographic reference point, answered
// with a short text plus named map links. The provider owns the schema; this
// package only speaks its generateContent contract.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// ErrOverloaded is the only failure surfaced to users. Any provider error
// maps to it; there is no retry, cache or rate limit here.
var ErrOverloaded = errors.New("o assistente está sobrecarregado, tente novamente em instantes")

// Reference point for all queries: Vilhena, RO.
const (
	refLatitude  = -12.740
	refLongitude = -60.145
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"
)

type MapLink struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type Answer struct {
	Text  string    `json:"text"`
	Links []MapLink `json:"links"`
}

type Service interface {
	Ask(ctx context.Context, query string) (*Answer, error)
}

type Client struct {
	log        *log.Logger
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

func NewClient(logger *log.Logger, baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		log:        logger,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		model:      defaultModel,
		apiKey:     apiKey,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
	Tools    []tool    `json:"tools"`
	ToolCfg  *toolCfg  `json:"toolConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type tool struct {
	GoogleMaps struct{} `json:"googleMaps"`
}

type toolCfg struct {
	RetrievalConfig retrievalConfig `json:"retrievalConfig"`
}

type retrievalConfig struct {
	LatLng latLng `json:"latLng"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []struct {
				Maps *struct {
					Title string `json:"title"`
					URI   string `json:"uri"`
				} `json:"maps"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

// Ask issues one provider call per invocation. Concurrent calls are not
// deduplicated; a later answer simply supersedes an earlier one at the
// caller.
func (c *Client) Ask(ctx context.Context, query string) (*Answer, error) {
	prompt := fmt.Sprintf(`Localize em Vilhena, RO: %q.
REGRAS:
1. Responda em no MÁXIMO 12 palavras.
2. Seja direto e útil para quem está procurando aluguel.
3. Exemplo: "Excelentes opções no Centro e Jardim Eldorado, próximos a conveniências."`, query)

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		Tools:    []tool{{}},
		ToolCfg: &toolCfg{
			RetrievalConfig: retrievalConfig{
				LatLng: latLng{Latitude: refLatitude, Longitude: refLongitude},
			},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		c.log.Printf("assistant: marshal request: %v", err)
		return nil, ErrOverloaded
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.log.Printf("assistant: new request: %v", err)
		return nil, ErrOverloaded
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Printf("assistant: request: %v", err)
		return nil, ErrOverloaded
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Printf("assistant: unexpected status %d", resp.StatusCode)
		return nil, ErrOverloaded
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		c.log.Printf("assistant: decode response: %v", err)
		return nil, ErrOverloaded
	}

	answer := &Answer{Text: "Resultados encontrados em Vilhena:"}
	if len(genResp.Candidates) > 0 {
		cand := genResp.Candidates[0]
		if len(cand.Content.Parts) > 0 && cand.Content.Parts[0].Text != "" {
			answer.Text = cand.Content.Parts[0].Text
		}
		for _, chunk := range cand.GroundingMetadata.GroundingChunks {
			if chunk.Maps != nil {
				answer.Links = append(answer.Links, MapLink{Title: chunk.Maps.Title, URI: chunk.Maps.URI})
			}
		}
	}

	return answer, nil
}
