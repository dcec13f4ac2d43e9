package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tickethawk.app/ingest/internal/model"
	"tickethawk.app/ingest/internal/service"
	"tickethawk.app/ingest/internal/store"
)

var _ = Describe("RegistryService", func() {
	var (
		stores *fakeStores
		svc    service.RegistryService
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		stores = newFakeStores()
		stores.addAdmin(model.Admin{ID: "admin-1", Name: "Alex Johnson", Role: model.RoleAdmin})
		svc = service.NewRegistryService(stores)
	})

	It("creates a keyword assigned to an existing admin", func() {
		kw, err := svc.CreateKeyword(ctx, "  Refund ", model.CategorySupport, "admin-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(kw.ID).To(HavePrefix("kw-"))
		Expect(kw.Term).To(Equal("Refund"))
		Expect(kw.Category).To(Equal(model.CategorySupport))

		keywords, err := svc.ListKeywords(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(keywords).To(HaveLen(1))
	})

	It("rejects an empty term", func() {
		_, err := svc.CreateKeyword(ctx, "   ", model.CategorySupport, "admin-1")
		Expect(err).To(MatchError(service.ErrEmptyTerm))
	})

	It("rejects an unknown category", func() {
		_, err := svc.CreateKeyword(ctx, "refund", model.TicketCategory("Critical"), "admin-1")
		Expect(err).To(MatchError(service.ErrInvalidCategory))
	})

	It("rejects an assignment to a missing admin", func() {
		_, err := svc.CreateKeyword(ctx, "refund", model.CategorySupport, "admin-gone")
		Expect(err).To(MatchError(service.ErrUnknownAdmin))
	})

	It("deletes a keyword by id", func() {
		kw, err := svc.CreateKeyword(ctx, "refund", model.CategorySupport, "admin-1")
		Expect(err).NotTo(HaveOccurred())

		Expect(svc.DeleteKeyword(ctx, kw.ID)).To(Succeed())
		Expect(svc.DeleteKeyword(ctx, kw.ID)).To(MatchError(store.ErrNotFound))
	})
})

var _ = Describe("QueryService", func() {
	var (
		stores *fakeStores
		svc    service.QueryService
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		stores = newFakeStores()
		svc = service.NewQueryService(stores)
	})

	It("aggregates counters across stores", func() {
		stores.addKeyword(model.Keyword{ID: "kw-1", Term: "urgent", Category: model.CategoryUrgent, AssignedAdminID: "admin-1"})
		_, err := stores.Messages().Upsert(ctx, &model.Message{ID: "wamid.S1", Type: model.TypeText})
		Expect(err).NotTo(HaveOccurred())

		stats, err := svc.Stats(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Messages).To(Equal(int64(1)))
		Expect(stats.Tickets).To(BeZero())
		Expect(stats.Keywords).To(Equal(int64(1)))
	})
})
