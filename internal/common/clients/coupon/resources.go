package coupon

import (
	"encoding/json"

	"github.com/kingko/bd2redeem-bot/internal/common/domain"
)

type redeemRequest struct {
	AppID  string `json:"appId"`
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

// redeemResponse keeps the error field raw because the remote sends it
// either as an object with a message string or as a bare string. A nil
// Error means the key was absent, which signals success.
type redeemResponse struct {
	Error json.RawMessage `json:"error"`
}

func (res *redeemResponse) errorMessage() string {
	var obj struct {
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(res.Error, &obj); err == nil {
		if obj.Message != nil {
			return *obj.Message
		}

		return ""
	}

	var str string
	if err := json.Unmarshal(res.Error, &str); err == nil {
		return str
	}

	// Error key present but neither object nor string. The original
	// web client treats this shape as an empty message.
	return ""
}

// mapRemoteError is the total mapping from the remote error vocabulary
// to outcome variants. Unmapped messages surface through
// OutcomeUnknownRemote instead of being swallowed.
func mapRemoteError(message string) domain.Outcome {
	switch message {
	case "":
		return domain.Outcome{Kind: domain.OutcomeSuccess}
	case "InvalidCode":
		return domain.Outcome{Kind: domain.OutcomeInvalidCode}
	case "AlreadyUsed":
		return domain.Outcome{Kind: domain.OutcomeAlreadyUsed}
	case "IncorrectUser":
		return domain.Outcome{Kind: domain.OutcomeIncorrectUser}
	case "ExpiredCode":
		return domain.Outcome{Kind: domain.OutcomeExpiredCode}
	case "UnavailableCode":
		return domain.Outcome{Kind: domain.OutcomeUnavailable}
	case "BadRequest":
		return domain.Outcome{Kind: domain.OutcomeBadRequest}
	default:
		return domain.Outcome{Kind: domain.OutcomeUnknownRemote, Message: message}
	}
}
