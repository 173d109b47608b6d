package click

// Action codes of the two-phase gateway protocol.
const (
	ActionPrepare  = "0"
	ActionComplete = "1"
)

// Gateway result codes. The values and notes are part of the wire protocol.
const (
	CodeSuccess             = 0
	CodeSignFailed          = -1
	CodeInvalidAmount       = -2
	CodeActionNotFound      = -3
	CodeAlreadyPaid         = -4
	CodeUserNotFound        = -5
	CodeTransactionNotFound = -6
	CodeInternalError       = -7
	CodeTransactionCanceled = -9
)

var errorNotes = map[int]string{
	CodeSuccess:             "Success",
	CodeSignFailed:          "SIGN CHECK FAILED!",
	CodeInvalidAmount:       "Incorrect parameter amount",
	CodeActionNotFound:      "Action not found",
	CodeAlreadyPaid:         "Already paid",
	CodeUserNotFound:        "User does not exist",
	CodeTransactionNotFound: "Transaction does not exist",
	CodeInternalError:       "Failed to update user data",
	CodeTransactionCanceled: "Transaction cancelled",
}

// ErrorNote returns the protocol note for a result code.
func ErrorNote(code int) string {
	if note, ok := errorNotes[code]; ok {
		return note
	}
	return "Unknown error"
}
