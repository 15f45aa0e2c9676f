package db

// TagTerm is one exact-match clause of a disjunctive query.
type TagTerm struct {
	Field string
	Value string
}

// DisjunctionQuery matches documents satisfying at least one term. The index
// bounds the result to Limit hits; hit order carries no meaning to callers.
type DisjunctionQuery struct {
	IndexName    string
	Terms        []TagTerm
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
