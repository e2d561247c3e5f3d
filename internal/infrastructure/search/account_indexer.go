package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-ddd-registration/internal/domain/entity"
)

// AccountDocument is the searchable projection of an account. It never carries credentials.
type AccountDocument struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountIndexer writes new accounts into the directory index.
type AccountIndexer struct {
	ES    *elasticsearch.Client
	Index string
}

func NewAccountIndexer(es *elasticsearch.Client, index string) *AccountIndexer {
	return &AccountIndexer{ES: es, Index: index}
}

func toDocument(a entity.Account) AccountDocument {
	return AccountDocument{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		AvatarURL: a.AvatarURL,
		CreatedAt: a.CreatedAt,
	}
}

// AccountRegistered indexes the account under its id.
func (i *AccountIndexer) AccountRegistered(ctx context.Context, a entity.Account) error {
	body, err := json.Marshal(toDocument(a))
	if err != nil {
		return fmt.Errorf("encode account document: %w", err)
	}
	req := esapi.IndexRequest{
		Index:      i.Index,
		DocumentID: a.ID,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, i.ES)
	if err != nil {
		return fmt.Errorf("index account %s: %w", a.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("index account %s: %s: %s", a.ID, res.Status(), bytes.TrimSpace(msg))
	}
	return nil
}
