package redeem

const (
	msgBound            = "Bound account id %s."
	msgAlreadyBound     = "You are already bound to account id %s. Use /unbind first to change it."
	msgInvalidAccountID = "Binding failed: the account id must be at least 2 characters and contain no spaces."
	msgBindFailed       = "Failed to save the binding, please try again."

	msgUnbound      = "Binding removed."
	msgNotBound     = "You have no bound account id."
	msgUnbindFailed = "Failed to remove the binding, please try again."

	msgNoBindings = "No accounts are bound yet."

	msgQueryBindingNoTarget = "Reply to a user or mention one to query their binding."
	msgTargetBound          = "That user is bound to account id %s."
	msgTargetNotBound       = "That user has no bound account id."

	msgNoHistory     = "No redeemed codes on record."
	msgHistoryHeader = "Recently redeemed codes (oldest first):"

	msgRedeemUsage     = "Usage: %s <accountId> <code> or %s <code>"
	msgRedeemNotBound  = "You have no bound account id. Use /bind <accountId> first, or pass the account id explicitly."
	msgAlreadyRedeemed = "You have already redeemed this code."
	msgRedeemInFlight  = "This code is already being redeemed for you, hold on."

	msgRedeemSuccess       = "Code redeemed successfully!"
	msgRedeemInvalidCode   = "Invalid code, please check it and try again."
	msgRedeemAlreadyUsed   = "This code has already been used, try another one."
	msgRedeemIncorrectUser = "The account id was not recognized, please check it and try again."
	msgRedeemExpiredCode   = "This code has expired."
	msgRedeemUnavailable   = "This code is not available right now."
	msgRedeemBadRequest    = "The redemption request was rejected as malformed."
	msgRedeemUnknownError  = "Unknown error from the redemption service: %s"
	msgRedeemRequestFailed = "Redemption request failed: %v"
	msgRedeemParseFailed   = "Could not parse the redemption response: %v"
)
