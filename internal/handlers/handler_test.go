package handlers

import (
	"context"
	"time"

	"github.com/paymint/paymint-bot/internal/client/paystack"
	"github.com/paymint/paymint-bot/internal/client/whatsapp"
	"github.com/paymint/paymint-bot/internal/models"
	"github.com/paymint/paymint-bot/internal/state"
)

// In-memory fakes for the handler's collaborators.

type sentImage struct {
	to      string
	caption string
}

type fakeSender struct {
	texts      []string
	recipients []string
	images     []sentImage
	buttonIDs  []string
	sendErr    error
}

func (f *fakeSender) SendText(_ context.Context, to, text string) error {
	f.recipients = append(f.recipients, to)
	f.texts = append(f.texts, text)
	return f.sendErr
}

func (f *fakeSender) SendImage(_ context.Context, to string, _ []byte, caption string) error {
	f.images = append(f.images, sentImage{to: to, caption: caption})
	return f.sendErr
}

func (f *fakeSender) SendButtons(_ context.Context, to, _ string, buttons []whatsapp.Button) error {
	f.recipients = append(f.recipients, to)
	for _, b := range buttons {
		f.buttonIDs = append(f.buttonIDs, b.ID)
	}
	return f.sendErr
}

func (f *fakeSender) lastText() string {
	if len(f.texts) == 0 {
		return ""
	}
	return f.texts[len(f.texts)-1]
}

type fakeVendorStore struct {
	vendors map[string]*models.Vendor
	emails  map[string]string
	deleted []string
	findErr error
}

func newFakeVendorStore() *fakeVendorStore {
	return &fakeVendorStore{
		vendors: make(map[string]*models.Vendor),
		emails:  make(map[string]string),
	}
}

func (f *fakeVendorStore) FindByPhone(_ context.Context, phone string) (*models.Vendor, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.vendors[phone], nil
}

func (f *fakeVendorStore) UpsertProfile(_ context.Context, vendor *models.Vendor) error {
	if vendor.Plan == "" {
		vendor.Plan = models.PlanFree
	}
	f.vendors[vendor.Phone] = vendor
	return nil
}

func (f *fakeVendorStore) UpdateEmail(_ context.Context, phone, email string) error {
	f.emails[phone] = email
	if v, ok := f.vendors[phone]; ok {
		v.Email = email
	}
	return nil
}

func (f *fakeVendorStore) DeleteByPhone(_ context.Context, phone string) error {
	f.deleted = append(f.deleted, phone)
	delete(f.vendors, phone)
	return nil
}

type fakeSaleStore struct {
	count   int64
	created []*models.Sale
	inRange []models.Sale
}

func (f *fakeSaleStore) Create(_ context.Context, sale *models.Sale) (*models.Sale, error) {
	f.created = append(f.created, sale)
	f.count++
	return sale, nil
}

func (f *fakeSaleStore) CountByVendor(_ context.Context, _ string) (int64, error) {
	return f.count, nil
}

func (f *fakeSaleStore) FindByVendorInRange(_ context.Context, _ string, _, _ time.Time) ([]models.Sale, error) {
	return f.inRange, nil
}

type increment struct {
	period string
	amount float64
	count  int64
}

type fakeSummaryStore struct {
	daily   []increment
	monthly []increment
}

func (f *fakeSummaryStore) IncrementDaily(_ context.Context, _, date string, amount float64, count int64) error {
	f.daily = append(f.daily, increment{period: date, amount: amount, count: count})
	return nil
}

func (f *fakeSummaryStore) IncrementMonthly(_ context.Context, _, month string, amount float64, count int64) error {
	f.monthly = append(f.monthly, increment{period: month, amount: amount, count: count})
	return nil
}

type fakePayments struct {
	link     string
	transfer *paystack.BankTransfer
	err      error
}

func (f *fakePayments) CreatePaymentLink(_ context.Context, _, _ string) (string, error) {
	return f.link, f.err
}

func (f *fakePayments) CreateBankTransfer(_ context.Context, _, _ string) (*paystack.BankTransfer, error) {
	return f.transfer, f.err
}

type testEnv struct {
	handler   *BotHandler
	sender    *fakeSender
	vendors   *fakeVendorStore
	sales     *fakeSaleStore
	summaries *fakeSummaryStore
	payments  *fakePayments
	sessions  *state.Manager
}

// testNow is a fixed Thursday afternoon in the reference timezone.
var testNow = time.Date(2026, time.August, 27, 14, 30, 0, 0, time.UTC)

func newTestEnv() *testEnv {
	env := &testEnv{
		sender:    &fakeSender{},
		vendors:   newFakeVendorStore(),
		sales:     &fakeSaleStore{},
		summaries: &fakeSummaryStore{},
		payments:  &fakePayments{},
		sessions:  state.NewManager(),
	}

	env.handler = NewBotHandler(
		env.sender,
		env.vendors,
		env.sales,
		env.summaries,
		env.payments,
		env.sessions,
		time.UTC,
	)
	env.handler.now = func() time.Time { return testNow }
	env.handler.renderImage = func(*models.Vendor, []models.SaleItem, float64, string, string, string) ([]byte, error) {
		return []byte("png"), nil
	}
	return env
}

func (e *testEnv) addVendor(phone string, mutate ...func(*models.Vendor)) *models.Vendor {
	vendor := &models.Vendor{
		Phone:        phone,
		Name:         "Ada",
		BusinessName: "Ada Stores",
		Contact:      "08011112222",
		Address:      "12 Lagos Rd",
		Plan:         models.PlanFree,
	}
	for _, fn := range mutate {
		fn(vendor)
	}
	e.vendors.vendors[phone] = vendor
	return vendor
}

func textMessage(from, text string) whatsapp.IncomingMessage {
	return whatsapp.IncomingMessage{From: from, ID: "wamid.test", Text: text}
}

func buttonMessage(from, buttonID string) whatsapp.IncomingMessage {
	return whatsapp.IncomingMessage{From: from, ID: "wamid.test", ButtonID: buttonID}
}
