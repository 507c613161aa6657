package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/paymint/paymint-bot/internal/state"
)

func TestCleanHandle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"@MyShop", "myshop"},
		{"  @Ada_Stores  ", "ada_stores"},
		{"plain", "plain"},
		{"@@double", "@double"},
	}

	for _, tt := range tests {
		if got := cleanHandle(tt.in); got != tt.want {
			t.Errorf("cleanHandle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanWebsite(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"adastores.ng", "https://adastores.ng"},
		{"https://adastores.ng", "https://adastores.ng"},
		{"http://adastores.ng", "http://adastores.ng"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := cleanWebsite(tt.in); got != tt.want {
			t.Errorf("cleanWebsite(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// The full happy path: a new sender's first message opens the flow, eleven
// answers later the vendor exists and the session is gone.
func TestOnboardingFullFlow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	phone := "2348011112222"

	env.handler.HandleMessage(ctx, textMessage(phone, "hi"))

	if !env.sessions.Has(phone, state.KindOnboarding) {
		t.Fatal("first message from an unknown sender should open onboarding")
	}
	if !strings.Contains(env.sender.lastText(), "Welcome to Paymint") {
		t.Fatalf("expected welcome prompt, got %q", env.sender.lastText())
	}

	answers := []string{
		"Ada",             // name
		"Ada Stores",      // business name
		"08011112222",     // contact
		"12 Lagos Rd",     // address
		"We sell snacks",  // description
		"@AdaStores",      // instagram
		"skip",            // tiktok
		"skip",            // twitter
		"skip",            // facebook
		"adastores.ng",    // website
		"no",              // share incentive
	}
	for _, answer := range answers {
		env.handler.HandleMessage(ctx, textMessage(phone, answer))
	}

	vendor := env.vendors.vendors[phone]
	if vendor == nil {
		t.Fatal("vendor was not saved after the final answer")
	}
	if vendor.Name != "Ada" || vendor.BusinessName != "Ada Stores" {
		t.Errorf("profile fields = %q/%q", vendor.Name, vendor.BusinessName)
	}
	if vendor.Instagram != "adastores" {
		t.Errorf("Instagram = %q, want handle cleaned to %q", vendor.Instagram, "adastores")
	}
	if vendor.TikTok != "" || vendor.Twitter != "" || vendor.Facebook != "" {
		t.Errorf("skipped socials should be empty, got %q/%q/%q", vendor.TikTok, vendor.Twitter, vendor.Facebook)
	}
	if vendor.Website != "https://adastores.ng" {
		t.Errorf("Website = %q, want scheme auto-prefixed", vendor.Website)
	}
	if vendor.EnableShareIncentive {
		t.Error("answering no should disable the share incentive")
	}
	if !vendor.EnableSocialMarketing {
		t.Error("a vendor with socials should have marketing enabled")
	}
	if vendor.Plan != "free" {
		t.Errorf("Plan = %q, want new vendors on free", vendor.Plan)
	}
	if env.sessions.Get(phone) != nil {
		t.Error("session should be deleted after completion")
	}
	if !strings.Contains(env.sender.lastText(), "Business Setup Complete") {
		t.Errorf("expected completion summary, got %q", env.sender.lastText())
	}
}

func TestOnboardingSkipsAllOptional(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	phone := "2348033334444"

	env.handler.HandleMessage(ctx, textMessage(phone, "hello"))
	for _, answer := range []string{
		"Bola", "Bola Foods", "08033334444", "4 Abuja Cl", "Meals",
		"SKIP", " skip ", "skip", "skip", "skip", "nah",
	} {
		env.handler.HandleMessage(ctx, textMessage(phone, answer))
	}

	vendor := env.vendors.vendors[phone]
	if vendor == nil {
		t.Fatal("vendor was not saved")
	}
	if vendor.HasSocialMedia() {
		t.Errorf("all socials skipped, yet HasSocialMedia: %+v", vendor)
	}
	if vendor.EnableSocialMarketing {
		t.Error("no socials means marketing stays off")
	}
	if vendor.EnableShareIncentive || vendor.ShareIncentiveText != "" {
		t.Error("incentive should be off with empty text")
	}
}

func TestOnboardingIncentiveDefaultText(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	phone := "2348055556666"

	env.handler.HandleMessage(ctx, textMessage(phone, "hey"))
	for _, answer := range []string{
		"Chi", "Chi Wears", "08055556666", "9 Aba Rd", "Clothing",
		"skip", "skip", "skip", "skip", "skip",
		"yes",     // enable incentive, one more step follows
		"default", // use the canned text
	} {
		env.handler.HandleMessage(ctx, textMessage(phone, answer))
	}

	vendor := env.vendors.vendors[phone]
	if vendor == nil {
		t.Fatal("vendor was not saved")
	}
	if !vendor.EnableShareIncentive {
		t.Error("answering yes should enable the incentive")
	}
	if vendor.ShareIncentiveText != defaultIncentiveText {
		t.Errorf("ShareIncentiveText = %q, want the default text", vendor.ShareIncentiveText)
	}
}

func TestAdvanceStepCorruptSession(t *testing.T) {
	session := &state.Session{
		Kind: state.KindOnboarding,
		Step: stepCount + 5,
		Data: map[string]string{},
	}

	_, _, err := advanceStep(session, "anything")
	if err == nil {
		t.Fatal("out-of-range step should be an error")
	}
}

func TestAdvanceOnboardingDiscardsCorruptSession(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	phone := "2348077778888"

	env.sessions.Set(phone, &state.Session{
		Kind: state.KindOnboarding,
		Step: stepCount + 1,
	})

	env.handler.HandleMessage(ctx, textMessage(phone, "Ada"))

	if env.sessions.Get(phone) != nil {
		t.Error("corrupt session should be discarded")
	}
	if !strings.Contains(env.sender.lastText(), "start over") {
		t.Errorf("expected a start-over prompt, got %q", env.sender.lastText())
	}
}
