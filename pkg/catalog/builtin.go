package catalog

import "github.com/quorumbank/teller/pkg/domain"

// Default returns the built-in banking catalog. Field names, tools and
// keywords mirror a typical retail banking assistant; hosts that need a
// different set load their own YAML catalog instead.
func Default() *Catalog {
	c := New()

	c.Register(&domain.IntentSchema{
		Intent:         "balance_inquiry",
		OptionalFields: []string{"account_type"},
		Defaults:       map[string]any{"account_type": "checking"},
		Rules: map[string]domain.Rule{
			"account_type": {OneOf: []string{"checking", "savings", "credit"}},
		},
		ReadTools:        []string{"get_balance"},
		ResponseTemplate: "Your {{.account_type}} balance is ${{.get_balance.balance}}.",
	}, "balance", "how much money", "how much do i have", "in my account")

	c.Register(&domain.IntentSchema{
		Intent:         "transfer_funds",
		RequiredFields: []string{"recipient", "amount"},
		Rules: map[string]domain.Rule{
			"recipient": {MinLen: intp(4), MaxLen: intp(34)},
			"amount":    {Min: floatp(0.01), Max: floatp(25000)},
		},
		NeedsConfirmation: true,
		ReadTools:         []string{"get_balance"},
		CommitTools:       []string{"execute_transfer"},
		MaxToolRetries:    1,
		Prompts: map[string]string{
			"recipient": "Which account should receive the funds?",
			"amount":    "How much would you like to transfer?",
		},
		ConfirmPrompt:    "You're about to transfer ${{.amount}} to {{.recipient}}. Proceed? (yes/no)",
		ResponseTemplate: "Done! ${{.amount}} is on its way to {{.recipient}}.",
	}, "transfer", "send money", "move money", "wire")

	c.Register(&domain.IntentSchema{
		Intent:         "card_block",
		RequiredFields: []string{"card_last4"},
		Rules: map[string]domain.Rule{
			"card_last4": {MinLen: intp(4), MaxLen: intp(4)},
		},
		NeedsConfirmation: true,
		CommitTools:       []string{"block_card"},
		Prompts: map[string]string{
			"card_last4": "What are the last four digits of the card to block?",
		},
		ConfirmPrompt:    "Block the card ending in {{.card_last4}} immediately? (yes/no)",
		ResponseTemplate: "The card ending in {{.card_last4}} has been blocked.",
	}, "block my card", "lost my card", "card was stolen", "freeze", "lock my card")

	c.Register(&domain.IntentSchema{
		Intent:         "card_activate",
		RequiredFields: []string{"card_last4"},
		Rules: map[string]domain.Rule{
			"card_last4": {MinLen: intp(4), MaxLen: intp(4)},
		},
		CommitTools: []string{"activate_card"},
		Prompts: map[string]string{
			"card_last4": "What are the last four digits of the new card?",
		},
		ResponseTemplate: "Your card ending in {{.card_last4}} is now active.",
	}, "activate", "new card", "enable my card")

	c.Register(&domain.IntentSchema{
		Intent:         "report_fraud",
		RequiredFields: []string{"card_last4", "description"},
		Rules: map[string]domain.Rule{
			"card_last4":  {MinLen: intp(4), MaxLen: intp(4)},
			"description": {MinLen: intp(10), MaxLen: intp(500)},
		},
		NeedsConfirmation: true,
		CommitTools:       []string{"block_card", "create_fraud_case"},
		MaxToolRetries:    1,
		Prompts: map[string]string{
			"card_last4":  "What are the last four digits of the affected card?",
			"description": "Please describe the suspicious activity.",
		},
		ConfirmPrompt:    "I'll block the card ending in {{.card_last4}} and open a fraud case. Proceed? (yes/no)",
		ResponseTemplate: "Your card is blocked and fraud case {{.create_fraud_case.case_number}} has been opened. We'll be in touch.",
	}, "fraud", "suspicious", "didn't make", "unauthorized charge", "someone used")

	c.Register(&domain.IntentSchema{
		Intent:         "dispute_transaction",
		RequiredFields: []string{"transaction_id", "reason"},
		Rules: map[string]domain.Rule{
			"transaction_id": {MinLen: intp(6), MaxLen: intp(32)},
			"reason":         {OneOf: []string{"unauthorized", "duplicate", "wrong_amount", "not_received"}},
		},
		NeedsConfirmation: true,
		CommitTools:       []string{"create_dispute"},
		MaxToolRetries:    1,
		Prompts: map[string]string{
			"transaction_id": "Which transaction would you like to dispute? Please give its ID.",
			"reason":         "What's the reason? (unauthorized, duplicate, wrong_amount, not_received)",
		},
		ConfirmPrompt:    "File a dispute for transaction {{.transaction_id}} ({{.reason}})? (yes/no)",
		ResponseTemplate: "Dispute {{.create_dispute.case_number}} has been filed for transaction {{.transaction_id}}.",
	}, "dispute", "charge back", "wrong charge", "charged twice")

	c.Register(&domain.IntentSchema{
		Intent:         "transaction_history",
		OptionalFields: []string{"count"},
		Defaults:       map[string]any{"count": 10},
		Rules: map[string]domain.Rule{
			"count": {Min: floatp(1), Max: floatp(50)},
		},
		ReadTools:        []string{"get_transactions"},
		ResponseTemplate: "Here are your recent transactions: {{.get_transactions.transactions}}",
	}, "transactions", "history", "recent activity", "what did i spend")

	c.Register(&domain.IntentSchema{
		Intent:         "pay_bill",
		RequiredFields: []string{"payee", "amount"},
		Rules: map[string]domain.Rule{
			"payee":  {MinLen: intp(2), MaxLen: intp(64)},
			"amount": {Min: floatp(0.01), Max: floatp(50000)},
		},
		NeedsConfirmation: true,
		ReadTools:         []string{"get_balance"},
		CommitTools:       []string{"schedule_payment"},
		Prompts: map[string]string{
			"payee":  "Who would you like to pay?",
			"amount": "How much should I pay?",
		},
		ConfirmPrompt:    "Pay ${{.amount}} to {{.payee}}? (yes/no)",
		ResponseTemplate: "Payment of ${{.amount}} to {{.payee}} is scheduled.",
	}, "pay my", "bill", "pay the")

	return c
}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }
