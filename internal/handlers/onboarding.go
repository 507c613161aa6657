package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/paymint/paymint-bot/internal/models"
	"github.com/paymint/paymint-bot/internal/state"
)

// Onboarding walks a new vendor through an ordered sequence of prompts.
// Each inbound message answers the current step; the transition function
// stores the cleaned value, picks the next step and returns its prompt.
const (
	stepName = iota
	stepBusinessName
	stepContact
	stepAddress
	stepDescription
	stepInstagram
	stepTikTok
	stepTwitter
	stepFacebook
	stepWebsite
	stepIncentiveChoice
	stepIncentiveText
	stepCount
)

const skipToken = "skip"

const defaultIncentiveText = "🎁 Share this receipt & get 5% off your next purchase!"

const welcomePrompt = "👋🏽 Welcome to Paymint! Let's set up your business.\n\nWhat's your first name Boss?"

var stepPrompts = map[int]string{
	stepBusinessName:    "📛 Nice to meet you, %s!\n\nWhat's your business name?",
	stepContact:         "📞 What's your business contact line?",
	stepAddress:         "📍 What's your business address?",
	stepDescription:     "📝 Add a short description of your business.",
	stepInstagram:       "📱 *Social Media Setup* (Optional but Recommended!)\n\n🎯 Adding your social media will help customers find and follow you.\n\nWhat's your Instagram handle?\n\n_Type \"skip\" to skip this step_",
	stepTikTok:          "📱 What's your TikTok handle?\n\n_Type \"skip\" to skip this step_",
	stepTwitter:         "📱 What's your Twitter/X handle?\n\n_Type \"skip\" to skip this step_",
	stepFacebook:        "📱 What's your Facebook page name?\n\n_Type \"skip\" to skip this step_",
	stepWebsite:         "🌐 What's your website address?\n\n_Type \"skip\" to skip this step_",
	stepIncentiveChoice: "🎁 Want to offer customers a share incentive on receipts?\n\nReply *yes* to enable it, anything else to skip.",
	stepIncentiveText:   "✍️ Send the incentive text to print on receipts.\n\n_Type \"default\" to use ours_",
}

// errSessionCorrupt flags a step outside the defined range. The session is
// discarded; the process keeps running.
var errSessionCorrupt = errors.New("onboarding session corrupt")

func isSkip(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), skipToken)
}

// cleanHandle trims, strips one leading @ and lowercases a social handle.
func cleanHandle(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "@")
	return strings.ToLower(input)
}

func cleanWebsite(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || strings.HasPrefix(input, "http") {
		return input
	}
	return "https://" + input
}

// advanceStep consumes one answer, mutates the session in place and
// returns the next prompt. complete is true once every field is collected;
// the caller then persists the vendor and tears the session down.
func advanceStep(session *state.Session, input string) (prompt string, complete bool, err error) {
	trimmed := strings.TrimSpace(input)

	switch session.Step {
	case stepName:
		session.Data["name"] = trimmed
		session.Step = stepBusinessName
		return fmt.Sprintf(stepPrompts[stepBusinessName], trimmed), false, nil

	case stepBusinessName:
		session.Data["businessName"] = trimmed
		session.Step = stepContact

	case stepContact:
		session.Data["contact"] = trimmed
		session.Step = stepAddress

	case stepAddress:
		session.Data["address"] = trimmed
		session.Step = stepDescription

	case stepDescription:
		session.Data["description"] = trimmed
		session.Step = stepInstagram

	case stepInstagram:
		if isSkip(input) {
			session.Data["instagram"] = ""
		} else {
			session.Data["instagram"] = cleanHandle(input)
		}
		session.Step = stepTikTok

	case stepTikTok:
		if isSkip(input) {
			session.Data["tiktok"] = ""
		} else {
			session.Data["tiktok"] = cleanHandle(input)
		}
		session.Step = stepTwitter

	case stepTwitter:
		if isSkip(input) {
			session.Data["twitter"] = ""
		} else {
			session.Data["twitter"] = cleanHandle(input)
		}
		session.Step = stepFacebook

	case stepFacebook:
		if isSkip(input) {
			session.Data["facebook"] = ""
		} else {
			session.Data["facebook"] = trimmed
		}
		session.Step = stepWebsite

	case stepWebsite:
		if isSkip(input) {
			session.Data["website"] = ""
		} else {
			session.Data["website"] = cleanWebsite(input)
		}
		session.Step = stepIncentiveChoice

	case stepIncentiveChoice:
		if strings.EqualFold(trimmed, "yes") {
			session.Data["enableShareIncentive"] = "true"
			session.Step = stepIncentiveText
		} else {
			// Disabled: skip the text step entirely.
			session.Data["enableShareIncentive"] = "false"
			session.Data["shareIncentiveText"] = ""
			return "", true, nil
		}

	case stepIncentiveText:
		if strings.EqualFold(trimmed, "default") {
			session.Data["shareIncentiveText"] = defaultIncentiveText
		} else {
			session.Data["shareIncentiveText"] = trimmed
		}
		return "", true, nil

	default:
		return "", false, errSessionCorrupt
	}

	return stepPrompts[session.Step], false, nil
}

// startOnboarding greets a new sender and opens the session at the first
// step. The welcome message itself consumes no input.
func (h *BotHandler) startOnboarding(ctx context.Context, from string) {
	h.sessions.Set(from, &state.Session{
		Kind: state.KindOnboarding,
		Step: stepName,
		Data: make(map[string]string),
	})
	h.reply(ctx, from, welcomePrompt)
}

func (h *BotHandler) advanceOnboarding(ctx context.Context, session *state.Session, input string) {
	from := session.Phone

	prompt, complete, err := advanceStep(session, input)
	if err != nil {
		// The step counter escaped the defined range somehow. Drop the
		// session and ask the sender to start over.
		log.Printf("Corrupt onboarding session for %s (step %d), discarding", from, session.Step)
		h.sessions.Delete(from)
		h.reply(ctx, from, "❌ Something went wrong. Please send any message to start over.")
		return
	}

	if !complete {
		h.sessions.Set(from, session)
		h.reply(ctx, from, prompt)
		return
	}

	h.completeOnboarding(ctx, from, session)
}

func (h *BotHandler) completeOnboarding(ctx context.Context, from string, session *state.Session) {
	data := session.Data

	vendor := &models.Vendor{
		Phone:        from,
		Name:         data["name"],
		BusinessName: data["businessName"],
		Contact:      data["contact"],
		Address:      data["address"],
		Description:  data["description"],
		Instagram:    data["instagram"],
		TikTok:       data["tiktok"],
		Twitter:      data["twitter"],
		Facebook:     data["facebook"],
		Website:      data["website"],

		EnableShareIncentive: data["enableShareIncentive"] == "true",
		ShareIncentiveText:   data["shareIncentiveText"],
	}
	vendor.EnableSocialMarketing = vendor.HasSocialMedia()

	if err := h.vendors.UpsertProfile(ctx, vendor); err != nil {
		log.Printf("Failed to save vendor %s: %v", from, err)
		h.reply(ctx, from, "❌ There was an error saving your information. Please send your answer again.")
		return
	}

	h.sessions.Delete(from)
	h.reply(ctx, from, completionSummary(vendor))
	log.Printf("✅ Vendor onboarded: %s (%s)", vendor.BusinessName, from)
}

func completionSummary(vendor *models.Vendor) string {
	var socials []string
	if vendor.Instagram != "" {
		socials = append(socials, "📷 Instagram: @"+vendor.Instagram)
	}
	if vendor.TikTok != "" {
		socials = append(socials, "🎵 TikTok: @"+vendor.TikTok)
	}
	if vendor.Twitter != "" {
		socials = append(socials, "🐦 Twitter: @"+vendor.Twitter)
	}
	if vendor.Facebook != "" {
		socials = append(socials, "📘 Facebook: "+vendor.Facebook)
	}
	if vendor.Website != "" {
		socials = append(socials, "🌐 Website: "+vendor.Website)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✅ *Business Setup Complete!*\n\n🏢 *%s*\n📞 %s\n📍 %s",
		vendor.BusinessName, vendor.Contact, vendor.Address)

	if len(socials) > 0 {
		b.WriteString("\n\n📱 *Your Social Media:*\n" + strings.Join(socials, "\n"))
	}
	if vendor.EnableShareIncentive && vendor.ShareIncentiveText != "" {
		b.WriteString("\n\n🎁 *Share Incentive:*\n" + vendor.ShareIncentiveText)
	}

	b.WriteString("\n\n*Type /receipt anytime to create a receipt.*\n*Type /help to see everything I can do.*")
	return b.String()
}
