package adapter

import (
	"bytes"
	"encoding/json"

	"gostorefront/internal/domain"
)

// ListEnvelope é o resultado uniforme da resolução de envelope: a lista de
// itens ainda crus mais a metadata de paginação normalizada.
type ListEnvelope struct {
	Items []json.RawMessage
	Meta  domain.Meta
}

// ResolveList detecta qual dos envelopes conhecidos do backend chegou e
// extrai itens e paginação de forma uniforme. A detecção é ordenada, o
// primeiro formato que casa vence:
//
//  1. array puro
//  2. {data: [...]} com paginação sob 'pagination' ou 'meta'
//  3. {products: [...], meta} (já no nosso formato)
//  4. qualquer outra coisa vira lista vazia
//
// O envelope mudou de nome entre versões do backend sem deploy coordenado;
// o resolver aceita todos e decide uma única vez, aqui na borda.
func ResolveList(raw json.RawMessage) ListEnvelope {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ListEnvelope{Meta: domain.DefaultMeta()}
	}

	// 1. Array puro: sem paginação, tudo numa página só.
	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err == nil {
			meta := domain.Meta{Total: len(items), Page: 1, Limit: len(items), TotalPages: 1}
			if meta.Limit == 0 {
				meta.Limit = 10
			}
			return ListEnvelope{Items: items, Meta: meta}
		}
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return ListEnvelope{Meta: domain.DefaultMeta()}
	}

	// 2. {data: [...]}
	if rawData, ok := envelope["data"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(rawData, &items); err == nil {
			return ListEnvelope{Items: items, Meta: resolveMeta(envelope)}
		}
	}

	// 3. {products: [...], meta}
	if rawProducts, ok := envelope["products"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(rawProducts, &items); err == nil {
			meta := domain.DefaultMeta()
			if rawMeta, ok := envelope["meta"]; ok {
				var m domain.Meta
				if err := json.Unmarshal(rawMeta, &m); err == nil {
					meta = m
				}
			}
			return ListEnvelope{Items: items, Meta: meta}
		}
	}

	// 4. Formato desconhecido.
	return ListEnvelope{Meta: domain.DefaultMeta()}
}

// resolveMeta monta a paginação lendo cada campo sob 'pagination.*' e
// 'meta.*', preferindo o primeiro presente, com default independente por
// campo. O total de páginas já chegou como 'pages' e como 'totalPages'.
func resolveMeta(envelope map[string]json.RawMessage) domain.Meta {
	containers := make([]map[string]interface{}, 0, 2)
	for _, key := range []string{"pagination", "meta"} {
		if raw, ok := envelope[key]; ok {
			var m map[string]interface{}
			if err := json.Unmarshal(raw, &m); err == nil {
				containers = append(containers, m)
			}
		}
	}

	pickNum := func(def int, keys ...string) int {
		for _, container := range containers {
			if v := pickKeys(container, keys...); v != nil {
				return toInt(v, def)
			}
		}
		return def
	}

	return domain.Meta{
		Total:      pickNum(0, "total"),
		Page:       pickNum(1, "page"),
		Limit:      pickNum(10, "limit"),
		TotalPages: pickNum(1, "pages", "totalPages"),
	}
}

// ResolveObject extrai o objeto de um envelope {data: {...}} ou retorna a
// resposta como veio (endpoint de produto por id responde das duas formas).
func ResolveObject(raw json.RawMessage) json.RawMessage {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if data, ok := envelope["data"]; ok {
			trimmed := bytes.TrimSpace(data)
			if len(trimmed) > 0 && trimmed[0] == '{' {
				return data
			}
		}
	}
	return raw
}
