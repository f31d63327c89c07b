package typesense

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/kalam-platform/app-analytics/internal/utils"
	"github.com/typesense/typesense-go/v3/typesense/api"
)

// SynonymGroup is a term and the spellings readers search it by
type SynonymGroup struct {
	Root     string
	Synonyms []string
}

// DefaultSynonyms covers the common romanizations of devotional poetry terms.
// Authors and readers transliterate Urdu and Punjabi inconsistently.
var DefaultSynonyms = []SynonymGroup{
	// genres
	{Root: "naat", Synonyms: []string{"nat", "naath", "naat sharif", "naat shareef", "نعت"}},
	{Root: "hamd", Synonyms: []string{"hamad", "humd", "حمد"}},
	{Root: "manqabat", Synonyms: []string{"manqbat", "munqabat", "منقبت"}},
	{Root: "qawwali", Synonyms: []string{"qawali", "qavvali", "kawali", "قوالی"}},
	{Root: "ghazal", Synonyms: []string{"gazal", "ghazel", "غزل"}},
	{Root: "nasheed", Synonyms: []string{"nashid", "anasheed", "نشید"}},
	{Root: "salaam", Synonyms: []string{"salam", "salami", "سلام"}},
	{Root: "durood", Synonyms: []string{"darood", "durud", "salawat", "درود"}},
	{Root: "marsiya", Synonyms: []string{"marsia", "marsiyah", "مرثیہ"}},
	{Root: "noha", Synonyms: []string{"nauha", "nohay", "نوحہ"}},
	{Root: "kalam", Synonyms: []string{"kalaam", "کلام"}},

	// names and epithets
	{Root: "muhammad", Synonyms: []string{"mohammad", "mohammed", "muhammed", "محمد"}},
	{Root: "mustafa", Synonyms: []string{"mustapha", "mustafaa", "مصطفیٰ"}},
	{Root: "madina", Synonyms: []string{"madinah", "medina", "mdina", "مدینہ"}},
	{Root: "nabi", Synonyms: []string{"nabee", "nabiy", "نبی"}},
	{Root: "rasool", Synonyms: []string{"rasul", "rasoul", "رسول"}},
	{Root: "ya habibi", Synonyms: []string{"ya habeebi", "ya habib"}},
	{Root: "ali", Synonyms: []string{"aly", "علی"}},
	{Root: "hussain", Synonyms: []string{"husain", "hussein", "husayn", "حسین"}},
	{Root: "ghaus", Synonyms: []string{"ghous", "gaus", "غوث"}},

	// languages
	{Root: "urdu", Synonyms: []string{"اردو"}},
	{Root: "punjabi", Synonyms: []string{"panjabi", "پنجابی"}},
	{Root: "saraiki", Synonyms: []string{"seraiki", "siraiki", "سرائیکی"}},
}

// LoadSynonyms upserts groups into the content collection and reports how
// many were written. Individual failures are logged and skipped.
func (c *Client) LoadSynonyms(ctx context.Context, groups []SynonymGroup) (int, error) {
	if !c.Enabled() {
		return 0, ErrDisabled
	}

	loaded := 0
	for _, group := range groups {
		if err := c.UpsertSynonym(ctx, group.Root, group.Synonyms); err != nil {
			log.Printf("[typesense] synonym %q skipped: %v", group.Root, err)
			continue
		}
		loaded++
	}

	log.Printf("[typesense] synonyms loaded into %s: %d/%d", c.collection, loaded, len(groups))
	if loaded == 0 && len(groups) > 0 {
		return 0, fmt.Errorf("no synonyms loaded into %s", c.collection)
	}
	return loaded, nil
}

// UpsertSynonym creates or replaces a multi-way synonym that includes root
func (c *Client) UpsertSynonym(ctx context.Context, root string, synonyms []string) error {
	id := synonymID(root)
	if id == "" {
		return fmt.Errorf("empty synonym root")
	}

	all := make([]string, 0, len(synonyms)+1)
	all = append(all, root)
	all = append(all, synonyms...)

	schema := &api.SearchSynonymSchema{Synonyms: all}
	if _, err := c.client.Collection(c.collection).Synonyms().Upsert(ctx, id, schema); err != nil {
		return fmt.Errorf("upserting synonym %s: %w", id, err)
	}
	return nil
}

func synonymID(root string) string {
	return strings.ReplaceAll(utils.NormalizeKey(root), " ", "_")
}
