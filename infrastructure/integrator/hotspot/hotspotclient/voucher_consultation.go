package hotspotclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	hotspotdomain "github.com/Mwenda-Eric/bvaccess-api/infrastructure/integrator/hotspot/domain"
)

type VoucherConsultationParams struct {
	CreatedFrom time.Time
	CreatedTo   time.Time
	Page        int
	PageSize    int
}

// VoucherConsultationResponse é a página de vouchers retornada pelo hotspot.
// O invólucro também chega com capitalização inconsistente de chaves.
type VoucherConsultationResponse struct {
	Items      []hotspotdomain.VoucherPayload
	TotalCount int
	Page       int
}

func (r *VoucherConsultationResponse) UnmarshalJSON(data []byte) error {
	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	folded := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		folded[strings.ToLower(key)] = value
	}

	if items, ok := folded["items"]; ok {
		if err := json.Unmarshal(items, &r.Items); err != nil {
			return err
		}
	}
	if total, ok := folded["totalcount"]; ok {
		if err := json.Unmarshal(total, &r.TotalCount); err != nil {
			return err
		}
	}
	if page, ok := folded["page"]; ok {
		if err := json.Unmarshal(page, &r.Page); err != nil {
			return err
		}
	}

	return nil
}

func (c *HotspotClient) ListVouchers(params VoucherConsultationParams) (*VoucherConsultationResponse, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	// Construir a URL da requisição.
	endpoint, err := url.Parse(c.config.Hotspot.URL)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/vouchers")

	// Adicionar parâmetros de consulta.
	query := endpoint.Query()
	query.Set("createdFrom", params.CreatedFrom.UTC().Format(time.RFC3339))
	query.Set("createdTo", params.CreatedTo.UTC().Format(time.RFC3339))
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("pageSize", strconv.Itoa(params.PageSize))
	endpoint.RawQuery = query.Encode()

	// Criar a requisição HTTP.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	// Adicionar cabeçalhos necessários.
	req.Header.Set("X-Api-Key", c.config.Hotspot.APIKey)
	req.Header.Set("Accept", "application/json")

	// Executar a requisição.
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	// Verificar o código de status da resposta.
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	// Decodificar a resposta JSON.
	response := &VoucherConsultationResponse{}
	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return response, nil
}
