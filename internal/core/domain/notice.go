package domain

// Missing-document reasons reported by the notice intake pipeline, in report order.
const (
	MissingLateFeeProof      = "Proof of payment for late fee/penalty"
	MissingSupportingInvoice = "Supporting invoices"
)

// NoticeDocument is an uploaded file held only for the duration of one request.
type NoticeDocument struct {
	Filename string
	Content  []byte
}

type NoticeAnalysis struct {
	Reply            string   `json:"reply"`
	MissingDocuments []string `json:"missing_documents"`
}

func (a NoticeAnalysis) Complete() bool {
	return len(a.MissingDocuments) == 0
}
