package student

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
)

// Document is the loosely typed record shape kept by the store.
type Document = map[string]any

// FromDocument decodes a stored document into target (a pointer to Profile,
// Connection or Event). Unknown keys such as store metadata are ignored.
func FromDocument(doc Document, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("create decoder: %w", err)
	}

	if err := decoder.Decode(doc); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}

	return nil
}

// ToDocument converts a typed record into a store document using its json field names.
func ToDocument(source any) (Document, error) {
	data, err := json.Marshal(source)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	doc := make(Document)
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	return doc, nil
}

// ProfilesFromDocuments fails on the first malformed profile.
func ProfilesFromDocuments(docs []Document) ([]*Profile, error) {
	profiles := make([]*Profile, 0, len(docs))
	for _, doc := range docs {
		var p Profile
		if err := FromDocument(doc, &p); err != nil {
			return nil, fmt.Errorf("profile %v: %w", doc["name"], err)
		}
		profiles = append(profiles, &p)
	}
	return profiles, nil
}
