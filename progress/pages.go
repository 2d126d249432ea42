package progress

// Pages maps every logical site section to its display name. The page-visit
// tracker rejects keys outside this set, even though the column itself would
// store anything.
var Pages = map[string]string{
	"telainicial":   "Tela Inicial",
	"videos":        "Vídeos e Tutoriais",
	"materiais":     "Materiais de Estudo",
	"pdfs":          "PDFs e Apostilas",
	"codigo":        "Exemplos de Código",
	"comunidade":    "Comunidade",
	"configuracoes": "Configurações",
}

// ResourcePages is the strict subset of Pages counted by the
// "resources accessed" metric.
var ResourcePages = map[string]string{
	"videos":    "Vídeos e Tutoriais",
	"materiais": "Materiais de Estudo",
	"pdfs":      "PDFs e Apostilas",
	"codigo":    "Exemplos de Código",
}

// Fixed enumeration orders, used so suggestion output is deterministic.
var (
	pageOrder         = []string{"telainicial", "videos", "materiais", "pdfs", "codigo", "comunidade", "configuracoes"}
	resourcePageOrder = []string{"videos", "materiais", "pdfs", "codigo"}
)

// IsKnownPage reports whether key names one of the site sections.
func IsKnownPage(key string) bool {
	_, ok := Pages[key]
	return ok
}

// IsResourcePage reports whether key names a resource section.
func IsResourcePage(key string) bool {
	_, ok := ResourcePages[key]
	return ok
}
