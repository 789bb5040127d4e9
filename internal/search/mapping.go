package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// mappingVersion is bumped whenever buildIndexMapping changes; a mismatch on
// startup triggers an index rebuild.
const mappingVersion = "1"

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	titleField := bleve.NewTextFieldMapping()
	titleField.Analyzer = en.AnalyzerName
	titleField.Store = true
	docMapping.AddFieldMappingsAt("title", titleField)

	descriptionField := bleve.NewTextFieldMapping()
	descriptionField.Analyzer = en.AnalyzerName
	descriptionField.Store = true
	docMapping.AddFieldMappingsAt("description", descriptionField)

	bodyField := bleve.NewTextFieldMapping()
	bodyField.Analyzer = en.AnalyzerName
	bodyField.Store = false
	docMapping.AddFieldMappingsAt("body", bodyField)

	urlField := bleve.NewTextFieldMapping()
	urlField.Analyzer = keyword.Name
	urlField.Store = true
	docMapping.AddFieldMappingsAt("url", urlField)

	// Keyword analyzer keeps compound tag names intact (e.g., "deep-learning").
	tagsField := bleve.NewTextFieldMapping()
	tagsField.Analyzer = keyword.Name
	tagsField.Store = true
	docMapping.AddFieldMappingsAt("tags", tagsField)

	ownerField := bleve.NewTextFieldMapping()
	ownerField.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("owner_id", ownerField)

	kindField := bleve.NewTextFieldMapping()
	kindField.Analyzer = keyword.Name
	kindField.Store = true
	docMapping.AddFieldMappingsAt("kind", kindField)

	idField := bleve.NewTextFieldMapping()
	idField.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("id", idField)

	createdField := bleve.NewNumericFieldMapping()
	createdField.Store = true
	docMapping.AddFieldMappingsAt("created_at", createdField)

	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}
