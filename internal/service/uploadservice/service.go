package uploadservice

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	apperror "gostorefront/internal/errors"
	"gostorefront/internal/pkg/logger"
)

// Service envia imagens direto ao host externo de imagens, sem passar pelo
// backend primário. Falhas aqui são UploadError, nunca ApiError: a UI
// precisa distinguir "o serviço de imagens caiu" de "o backend rejeitou".
type Service struct {
	uploadURL string
	preset    string
	httpc     *http.Client
	log       logger.Logger
}

// NewService cria e retorna uma nova instância do serviço de upload.
func NewService(uploadURL, preset string, timeout time.Duration, log logger.Logger) *Service {
	return &Service{
		uploadURL: uploadURL,
		preset:    preset,
		httpc:     &http.Client{Timeout: timeout},
		log:       log,
	}
}

// UploadImage sobe a imagem via multipart/form-data e retorna a URL segura
// que o backend consome como imageUrl.
func (s *Service) UploadImage(ctx context.Context, filename string, file io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", apperror.NewUploadError("falha ao montar o formulário", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", apperror.NewUploadError("falha ao ler o arquivo", err)
	}
	if err := writer.WriteField("upload_preset", s.preset); err != nil {
		return "", apperror.NewUploadError("falha ao montar o formulário", err)
	}
	if err := writer.Close(); err != nil {
		return "", apperror.NewUploadError("falha ao fechar o formulário", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uploadURL, &body)
	if err != nil {
		return "", apperror.NewUploadError("requisição inválida", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.httpc.Do(req)
	if err != nil {
		return "", apperror.NewUploadError("host de imagens inacessível", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.log.Error("host de imagens rejeitou o upload", apperror.NewUploadError(resp.Status, nil))
		return "", apperror.NewUploadError("upload rejeitado: "+resp.Status, nil)
	}

	var payload struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", apperror.NewUploadError("resposta do host de imagens ilegível", err)
	}
	if payload.SecureURL == "" {
		return "", apperror.NewUploadError("resposta sem secure_url", nil)
	}

	return payload.SecureURL, nil
}
