package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/logger"
)

// TokenSource define o contrato mínimo que o cliente espera da sessão:
// um bearer token atual, ou vazio quando não há sessão.
type TokenSource interface {
	Token() string
}

// Client é o ponto único de passagem de toda chamada de rede ao backend:
// resolução da base URL, injeção do header de autenticação, cookies,
// parse de JSON e classificação uniforme de erro.
//
// Cookies e bearer header andam juntos de propósito: a plataforma de
// hospedagem pode descartar cookies cross-origin, e o header é o
// fallback durável.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	log     logger.Logger
}

// New cria o cliente HTTP. A baseURL aceita tanto o endereço absoluto do
// backend quanto o prefixo proxiado; barras finais são toleradas e o
// sufixo /api só é acrescentado se ainda não estiver presente.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log logger.Logger) *Client {
	base := strings.TrimSuffix(baseURL, "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}

	// O jar mantém a sessão por cookie quando o host a preserva.
	jar, _ := cookiejar.New(nil)

	return &Client{
		baseURL: base,
		httpc: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		tokens: tokens,
		log:    log,
	}
}

// Request emite uma chamada JSON ao backend e retorna o corpo bruto.
// body nil emite sem corpo; respostas 204/vazias retornam nil antes de
// qualquer parse (parsear corpo vazio explode).
func (c *Client) Request(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	return c.RequestWith(ctx, method, path, body, nil)
}

// RequestWith é o Request com headers extras por chamada.
func (c *Client) RequestWith(ctx context.Context, method, path string, body interface{}, extraHeaders map[string]string) (json.RawMessage, error) {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperror.NewValidationError(fmt.Sprintf("corpo da requisição não serializável: %v", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, apperror.NewValidationError(fmt.Sprintf("requisição inválida: %v", err))
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Nenhuma resposta chegou: falha de transporte, não da API.
		c.log.Error("falha de rede ao chamar o backend", err)
		return nil, apperror.NewNetworkError(method+" "+path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewNetworkError(method+" "+path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := extractErrorMessage(data, resp.Status)

		// 401 é um estado esperado (sessão ausente), não uma falha a
		// gritar no log; quem chama decide o que fazer com ele.
		if resp.StatusCode == http.StatusUnauthorized {
			c.log.Debug("backend respondeu 401", map[string]interface{}{"path": path})
		} else {
			c.log.Error(fmt.Sprintf("erro da API em %s (%d)", path, resp.StatusCode),
				apperror.NewApiError(message, resp.StatusCode, data))
		}
		return nil, apperror.NewApiError(message, resp.StatusCode, data)
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	return json.RawMessage(data), nil
}

// extractErrorMessage normaliza a mensagem de erro do backend, que já foi
// observado em pelo menos quatro formatos: 'message' string, 'error'
// string, array 'errors' de {msg|message} (estilo lib de validação), ou
// nada utilizável (cai para o status HTTP).
func extractErrorMessage(body []byte, statusText string) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg, ok := payload["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := payload["error"].(string); ok && msg != "" {
			return msg
		}
		if errs, ok := payload["errors"].([]interface{}); ok {
			parts := make([]string, 0, len(errs))
			for _, e := range errs {
				item, ok := e.(map[string]interface{})
				if !ok {
					continue
				}
				if msg, ok := item["msg"].(string); ok && msg != "" {
					parts = append(parts, msg)
				} else if msg, ok := item["message"].(string); ok && msg != "" {
					parts = append(parts, msg)
				}
			}
			if len(parts) > 0 {
				return strings.Join(parts, ", ")
			}
		}
		// 'message' pode vir como objeto aninhado; evita vazar um
		// objeto serializado cru para a UI.
		if obj, ok := payload["message"].(map[string]interface{}); ok {
			if msg, ok := obj["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return "Error API: " + statusText
}
