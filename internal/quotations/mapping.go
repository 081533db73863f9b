package quotations

// FieldMapping pairs an API field with its storage column.
type FieldMapping struct {
	API      string
	Column   string
	Writable bool
}

// fieldMappings is the single source of truth for API <-> column names. Every
// column of models.Quotation appears exactly once.
var fieldMappings = []FieldMapping{
	{API: "id", Column: "id"},
	{API: "brand", Column: "brand", Writable: true},
	{API: "customerName", Column: "customername", Writable: true},
	{API: "date", Column: "date", Writable: true},
	{API: "products", Column: "products", Writable: true},
	{API: "subtotal", Column: "subtotal", Writable: true},
	{API: "gst", Column: "gst", Writable: true},
	{API: "total", Column: "total", Writable: true},
	// paid moves only through SetPaid
	{API: "paid", Column: "paid"},
	{API: "terms", Column: "terms", Writable: true},
	{API: "contactInfo", Column: "contactinfo", Writable: true},
	{API: "createdAt", Column: "createdat"},
	{API: "updatedAt", Column: "updatedat"},
}

// apiAliases are extra API names accepted on input, all read-only.
var apiAliases = map[string]string{
	"_id": "id",
}

var (
	columnByAPI = map[string]FieldMapping{}
	apiByColumn = map[string]FieldMapping{}
)

func init() {
	for _, m := range fieldMappings {
		columnByAPI[m.API] = m
		apiByColumn[m.Column] = m
	}
}

// Fields returns a copy of the mapping table.
func Fields() []FieldMapping {
	out := make([]FieldMapping, len(fieldMappings))
	copy(out, fieldMappings)
	return out
}

// ColumnFor resolves an API field name to its column.
func ColumnFor(api string) (string, bool) {
	if target, ok := apiAliases[api]; ok {
		api = target
	}
	m, ok := columnByAPI[api]
	return m.Column, ok
}

// APINameFor resolves a column to its API field name.
func APINameFor(column string) (string, bool) {
	m, ok := apiByColumn[column]
	return m.API, ok
}

func lookupAPI(api string) (FieldMapping, bool) {
	if target, ok := apiAliases[api]; ok {
		m := columnByAPI[target]
		m.Writable = false
		return m, true
	}
	m, ok := columnByAPI[api]
	return m, ok
}
