package handlers

import "context"

const helpText = `👋🏽 *Welcome to Paymint Bot!*

Here's what I can do for your business:

📦 */receipt*
Send itemized sales like this:
Pants - 2500
Top - 4000
Customer: John
Note: Paid POS

📊 */sales today*
Shows today's total sales.

📆 */sales month*
See your monthly sales total.

💳 */subscribe*
Upgrade to Premium for unlimited receipts.

📧 */email*
Save your email for payment receipts.

🗑️ */reset*
Delete your business profile.

❓ */help*
You're here already 😊

—

🎯 Let's simplify your sales life. 💚`

func (h *BotHandler) handleHelp(ctx context.Context, from string) {
	h.reply(ctx, from, helpText)
}
