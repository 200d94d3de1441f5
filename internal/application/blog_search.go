package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-cms/pkg/helpers"
)

const timeLayout = time.RFC3339

// PostsIndexMapping is the mapping of the blog posts index.
const PostsIndexMapping = `{
  "mappings": {
    "properties": {
      "title":       {"type": "text"},
      "slug":        {"type": "keyword"},
      "excerpt":     {"type": "text"},
      "content":     {"type": "text"},
      "tags":        {"type": "keyword"},
      "publishedAt": {"type": "date"}
    }
  }
}`

const esTimeout = 3 * time.Second

// ESPostIndex implements PostIndex on Elasticsearch.
type ESPostIndex struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewESPostIndex(ctx context.Context, es *elasticsearch.Client, index string) (*ESPostIndex, error) {
	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()
	if err := helpers.EnsureIndex(c, es, index, PostsIndexMapping); err != nil {
		return nil, err
	}
	return &ESPostIndex{ES: es, IndexName: index}, nil
}

func (x *ESPostIndex) Index(ctx context.Context, p entity.BlogPost) error {
	doc := map[string]any{
		"id":      p.ID,
		"title":   p.Title,
		"slug":    p.Slug,
		"content": p.Content,
		"tags":    p.Tags,
	}
	if p.Excerpt != nil {
		doc["excerpt"] = *p.Excerpt
	}
	if p.PublishedAt != nil {
		doc["publishedAt"] = p.PublishedAt.UTC().Format(timeLayout)
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.IndexName, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index post %s: %s", p.ID, res.Status())
	}
	return nil
}

func (x *ESPostIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: x.IndexName, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove post %s: %s", id, res.Status())
	}
	return nil
}

// Search performs a multi_match over title, tags, excerpt and content.
func (x *ESPostIndex) Search(ctx context.Context, q string, size int) ([]PostHit, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^3", "tags^2", "excerpt", "content"},
			},
		},
		"size":    size,
		"_source": []string{"id", "title", "slug", "excerpt", "tags", "publishedAt"},
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, esTimeout)
	defer cancel()

	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.IndexName), x.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search posts: %s", res.Status())
	}
	return decodeHits(res.Body)
}

func decodeHits(body io.Reader) ([]PostHit, error) {
	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string  `json:"_id"`
				Source PostHit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]PostHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		hit := h.Source
		if hit.ID == "" {
			hit.ID = h.ID
		}
		if hit.Tags == nil {
			hit.Tags = []string{}
		}
		out = append(out, hit)
	}
	return out, nil
}
