package domain

// FailureReason tags every way a submission can terminally fail. The empty
// string means no failure.
type FailureReason string

const (
	ReasonMissingShop      FailureReason = "missing_shop"
	ReasonInvalidProduct   FailureReason = "invalid_product"
	ReasonInvalidRating    FailureReason = "invalid_rating"
	ReasonUnauthorized     FailureReason = "unauthorized"
	ReasonRemoteValidation FailureReason = "remote_validation"
	ReasonBadResponse      FailureReason = "bad_response"
	ReasonTransport        FailureReason = "transport"
)

// Outcome is the classified result of one submission: either the created
// review id, or exactly one failure reason.
type Outcome struct {
	ID     string
	Reason FailureReason
}

func Success(id string) Outcome            { return Outcome{ID: id} }
func Failure(reason FailureReason) Outcome { return Outcome{Reason: reason} }

func (o Outcome) OK() bool { return o.Reason == "" }

// Directive tells the renderer what to show the submitter. Messages are the
// short generic literals below; raw remote error detail never reaches here.
type Directive struct {
	OK       bool   `json:"ok"`
	ID       string `json:"id,omitempty"`
	Message  string `json:"message,omitempty"`
	ReturnTo string `json:"returnTo"`
}

var failureMessages = map[FailureReason]string{
	ReasonMissingShop:      "Missing shop",
	ReasonInvalidProduct:   "Invalid product reference",
	ReasonInvalidRating:    "Rating must be 1..5",
	ReasonUnauthorized:     "App not authorized for this shop",
	ReasonRemoteValidation: "Validation error",
	ReasonBadResponse:      "API returned non-JSON",
	ReasonTransport:        "Could not reach API",
}

// Render maps an outcome to its directive. Pure: the same outcome and return
// target always produce the same directive.
func (o Outcome) Render(returnTo string) Directive {
	if returnTo == "" {
		returnTo = "/"
	}
	if o.OK() {
		return Directive{OK: true, ID: o.ID, ReturnTo: returnTo}
	}
	msg, ok := failureMessages[o.Reason]
	if !ok {
		msg = "Something went wrong"
	}
	return Directive{OK: false, Message: msg, ReturnTo: returnTo}
}
