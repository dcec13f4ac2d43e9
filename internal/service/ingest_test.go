package service_test

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tickethawk.app/ingest/internal/mapper"
	"tickethawk.app/ingest/internal/model"
	"tickethawk.app/ingest/internal/service"
)

func textMessage(id, text string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"from": "15551234567",
		"timestamp": "1669233778",
		"type": "text",
		"text": {"body": %q}
	}`, id, text)
}

func deliveryBody(messages ...string) []byte {
	return []byte(fmt.Sprintf(`{
		"object": "whatsapp_business_account",
		"entry": [{
			"id": "entry-1",
			"changes": [{
				"field": "messages",
				"value": {
					"messaging_product": "whatsapp",
					"metadata": {"display_phone_number": "+1 555 000 1111", "phone_number_id": "1234567890"},
					"contacts": [{"wa_id": "15551234567", "profile": {"name": "Bob"}}],
					"messages": [%s]
				}
			}]
		}]
	}`, strings.Join(messages, ",")))
}

var _ = Describe("IngestService", func() {
	var (
		stores *fakeStores
		feed   *fakeFeed
		svc    service.IngestService
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		stores = newFakeStores()
		stores.addAdmin(model.Admin{ID: "admin-1", Name: "Alex Johnson", Email: "alex@example.com", Role: model.RoleAdmin})
		stores.addKeyword(model.Keyword{ID: "kw-1", Term: "urgent", Category: model.CategoryUrgent, AssignedAdminID: "admin-1"})
		stores.addKeyword(model.Keyword{ID: "kw-2", Term: "help", Category: model.CategorySupport, AssignedAdminID: "admin-1"})
		feed = &fakeFeed{}
		svc = service.NewIngestService(stores, &fakeTxRunner{stores: stores}, mapper.NewWhatsAppMapper(), feed, slog.Default())
	})

	It("stores the message and opens a ticket on a keyword hit", func() {
		body := deliveryBody(textMessage("wamid.HBgLMTU1NTUxMjM0NTY=", "This is urgent, the site is down"))

		result, err := svc.ProcessEvent(ctx, body)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Messages).To(Equal(1))
		Expect(result.Tickets).To(Equal(1))
		Expect(result.Failed).To(BeZero())

		ticket := stores.ticketFor("wamid.HBgLMTU1NTUxMjM0NTY=")
		Expect(ticket).NotTo(BeNil())
		Expect(ticket.DisplayID).To(Equal("TKT-JM0NTY"))
		Expect(ticket.Status).To(Equal(model.TicketStatusNew))
		Expect(ticket.Keyword).To(Equal("urgent"))
		Expect(ticket.AssignedAdminID).To(Equal("admin-1"))
		Expect(ticket.AssignedAdminName).To(Equal("Alex Johnson"))
		Expect(ticket.SenderName).To(HaveValue(Equal("Bob")))
	})

	It("stores the message without a ticket when no keyword matches", func() {
		body := deliveryBody(textMessage("wamid.A1", "What's the status on the server migration?"))

		result, err := svc.ProcessEvent(ctx, body)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Messages).To(Equal(1))
		Expect(result.Tickets).To(BeZero())
		Expect(stores.messageCount()).To(Equal(1))
		Expect(stores.ticketCount()).To(BeZero())
	})

	It("converges repeated deliveries onto one message and one ticket", func() {
		body := deliveryBody(textMessage("wamid.DUP", "please help"))

		var displayID string
		for i := 0; i < 5; i++ {
			result, err := svc.ProcessEvent(ctx, body)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Messages).To(Equal(1))
			Expect(result.Tickets).To(Equal(1))

			ticket := stores.ticketFor("wamid.DUP")
			Expect(ticket).NotTo(BeNil())
			if displayID == "" {
				displayID = ticket.DisplayID
			}
			Expect(ticket.DisplayID).To(Equal(displayID))
		}

		Expect(stores.messageCount()).To(Equal(1))
		Expect(stores.ticketCount()).To(Equal(1))
	})

	It("never resets a ticket's status on redelivery", func() {
		body := deliveryBody(textMessage("wamid.STATUS", "help needed"))

		_, err := svc.ProcessEvent(ctx, body)
		Expect(err).NotTo(HaveOccurred())

		stores.mu.Lock()
		stores.tickets["wamid.STATUS"].Status = model.TicketStatusInProgress
		stores.mu.Unlock()

		_, err = svc.ProcessEvent(ctx, body)
		Expect(err).NotTo(HaveOccurred())

		Expect(stores.ticketFor("wamid.STATUS").Status).To(Equal(model.TicketStatusInProgress))
	})

	It("converges concurrent duplicate deliveries", func() {
		body := deliveryBody(textMessage("wamid.RACE", "urgent outage"))

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()
				_, err := svc.ProcessEvent(ctx, body)
				Expect(err).NotTo(HaveOccurred())
			}()
		}
		wg.Wait()

		Expect(stores.messageCount()).To(Equal(1))
		Expect(stores.ticketCount()).To(Equal(1))
	})

	It("never scans synthesized event records for keywords", func() {
		// A status-only entry yields a message with no provider id; the
		// mapper synthesizes one and tags it as an event.
		body := deliveryBody(`{"statuses": [{"status": "delivered"}]}`)

		result, err := svc.ProcessEvent(ctx, body)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Messages).To(Equal(1))
		Expect(result.Tickets).To(BeZero())
		Expect(stores.ticketCount()).To(BeZero())
	})

	It("isolates a failing message from the rest of the batch", func() {
		stores.failMessageID = "wamid.BAD"
		body := deliveryBody(
			textMessage("wamid.BAD", "urgent one"),
			textMessage("wamid.GOOD", "urgent two"),
		)

		result, err := svc.ProcessEvent(ctx, body)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Messages).To(Equal(1))
		Expect(result.Failed).To(Equal(1))
		Expect(result.Tickets).To(Equal(1))
		Expect(stores.ticketFor("wamid.GOOD")).NotTo(BeNil())
	})

	It("errors only when every message in the batch fails", func() {
		stores.messageUpsertErr = errFakeStoreDown
		body := deliveryBody(textMessage("wamid.X", "help"))

		result, err := svc.ProcessEvent(ctx, body)
		Expect(err).To(HaveOccurred())
		Expect(result.Failed).To(Equal(1))
		Expect(result.Messages).To(BeZero())
	})

	It("audits a delivery with messages as a single webhook event", func() {
		body := deliveryBody(textMessage("wamid.AUD", "hello"))

		_, err := svc.ProcessEvent(ctx, body)
		Expect(err).NotTo(HaveOccurred())
		Expect(stores.auditKinds()).To(Equal([]string{model.AuditKindWebhookEvent}))
	})

	It("audits an empty delivery as a single empty event", func() {
		body := []byte(`{"object": "whatsapp_business_account", "entry": []}`)

		result, err := svc.ProcessEvent(ctx, body)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Messages).To(BeZero())
		Expect(stores.auditKinds()).To(Equal([]string{model.AuditKindEmptyEvent}))
	})

	It("keeps a placeholder admin name when the assignee is missing", func() {
		stores.addKeyword(model.Keyword{ID: "kw-ghost", Term: "billing", Category: model.CategoryGeneral, AssignedAdminID: "admin-gone"})
		body := deliveryBody(textMessage("wamid.GHOST", "billing question"))

		_, err := svc.ProcessEvent(ctx, body)
		Expect(err).NotTo(HaveOccurred())

		ticket := stores.ticketFor("wamid.GHOST")
		Expect(ticket).NotTo(BeNil())
		Expect(ticket.AssignedAdminID).To(Equal("admin-gone"))
		Expect(ticket.AssignedAdminName).To(Equal("Unknown"))
	})

	It("still stores messages when the keyword registry cannot be loaded", func() {
		stores.keywordListErr = errFakeStoreDown
		body := deliveryBody(textMessage("wamid.NOREG", "urgent"))

		result, err := svc.ProcessEvent(ctx, body)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Messages).To(Equal(1))
		Expect(result.Tickets).To(BeZero())
	})

	It("publishes a live feed entry per stored message", func() {
		body := deliveryBody(
			textMessage("wamid.F1", "urgent one"),
			textMessage("wamid.F2", "nothing matching here"),
		)

		_, err := svc.ProcessEvent(ctx, body)
		Expect(err).NotTo(HaveOccurred())

		entries := feed.published()
		Expect(entries).To(HaveLen(2))
		Expect(entries[0].MessageID).To(Equal("wamid.F1"))
		Expect(entries[0].Ticketed).To(BeTrue())
		Expect(entries[1].MessageID).To(Equal("wamid.F2"))
		Expect(entries[1].Ticketed).To(BeFalse())
	})
})
