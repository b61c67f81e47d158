package review_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mchmarny/focusforge/pkg/deck"
	"github.com/mchmarny/focusforge/pkg/review"
)

var _ = Describe("Scheduling", func() {
	now := time.Date(2026, 1, 30, 9, 0, 0, 0, time.UTC)

	Context("NextReview", func() {
		It("should schedule hard cards for tomorrow", func() {
			next, err := review.NextReview(deck.Hard, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(next).To(Equal(time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)))
		})

		It("should schedule medium cards in three days", func() {
			next, err := review.NextReview(deck.Medium, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(next).To(Equal(time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)))
		})

		It("should schedule easy cards in a week", func() {
			next, err := review.NextReview(deck.Easy, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(next).To(Equal(time.Date(2026, 2, 6, 9, 0, 0, 0, time.UTC)))
		})

		It("should reject unknown difficulties", func() {
			_, err := review.NextReview(deck.Difficulty("trivial"), now)
			Expect(err).To(MatchError(review.ErrInvalidDifficulty))
		})
	})

	Context("ParseDifficulty", func() {
		It("should accept names and the good alias", func() {
			for in, want := range map[string]deck.Difficulty{
				"easy": deck.Easy, " Good ": deck.Medium, "medium": deck.Medium, "HARD": deck.Hard,
			} {
				got, err := review.ParseDifficulty(in)
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(want))
			}
		})

		It("should reject anything else", func() {
			_, err := review.ParseDifficulty("meh")
			Expect(err).To(MatchError(review.ErrInvalidDifficulty))
		})
	})

	Context("Due", func() {
		It("should return cards due at or before now", func() {
			cards := []deck.Card{
				{ID: "past", NextReview: now.Add(-time.Hour)},
				{ID: "now", NextReview: now},
				{ID: "future", NextReview: now.Add(time.Hour)},
			}
			due := review.Due(cards, now)
			Expect(due).To(HaveLen(2))
			Expect(due[0].ID).To(Equal("past"))
			Expect(due[1].ID).To(Equal("now"))
		})
	})
})

var _ = Describe("Session", func() {
	var (
		d   deck.Deck
		now time.Time
	)

	BeforeEach(func() {
		now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
		d = deck.Deck{
			ID:   "d1",
			Name: "Chemistry",
			Cards: []deck.Card{
				{ID: "c1", Front: "H2O", Back: "water", Difficulty: deck.Medium, NextReview: now},
				{ID: "c2", Front: "NaCl", Back: "salt", Difficulty: deck.Medium, NextReview: now},
			},
		}
	})

	It("should refuse an empty deck", func() {
		_, err := review.NewSession(deck.Deck{ID: "empty"})
		Expect(err).To(MatchError(review.ErrNoCards))
	})

	It("should walk the cards in order and reschedule them", func() {
		s, err := review.NewSession(d)
		Expect(err).NotTo(HaveOccurred())

		c, err := s.Current()
		Expect(err).NotTo(HaveOccurred())
		Expect(c.ID).To(Equal("c1"))
		Expect(s.Progress()).To(BeNumerically("==", 50))

		s.Reveal()
		Expect(s.Revealed()).To(BeTrue())

		rated, err := s.Rate(deck.Hard, now)
		Expect(err).NotTo(HaveOccurred())
		Expect(rated.Difficulty).To(Equal(deck.Hard))
		Expect(rated.NextReview).To(Equal(now.AddDate(0, 0, 1)))
		Expect(s.Revealed()).To(BeFalse())
		Expect(s.Complete()).To(BeFalse())

		pos, total := s.Position()
		Expect(pos).To(Equal(2))
		Expect(total).To(Equal(2))

		_, err = s.Rate(deck.Easy, now)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Complete()).To(BeTrue())
		Expect(s.Studied()).To(Equal(2))

		_, err = s.Rate(deck.Easy, now)
		Expect(err).To(MatchError(review.ErrSessionComplete))
		_, err = s.Current()
		Expect(err).To(MatchError(review.ErrSessionComplete))

		updated := s.Deck()
		Expect(updated.Cards[0].Difficulty).To(Equal(deck.Hard))
		Expect(updated.Cards[1].NextReview).To(Equal(now.AddDate(0, 0, 7)))
		Expect(d.Cards[0].Difficulty).To(Equal(deck.Medium))
	})

	It("should start over on reset", func() {
		s, err := review.NewSession(d)
		Expect(err).NotTo(HaveOccurred())
		_, err = s.Rate(deck.Medium, now)
		Expect(err).NotTo(HaveOccurred())
		_, err = s.Rate(deck.Medium, now)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Complete()).To(BeTrue())

		s.Reset()
		Expect(s.Complete()).To(BeFalse())
		Expect(s.Studied()).To(Equal(0))
		c, err := s.Current()
		Expect(err).NotTo(HaveOccurred())
		Expect(c.ID).To(Equal("c1"))
	})

	It("should not advance on an invalid rating", func() {
		s, err := review.NewSession(d)
		Expect(err).NotTo(HaveOccurred())
		_, err = s.Rate(deck.Difficulty("x"), now)
		Expect(err).To(MatchError(review.ErrInvalidDifficulty))
		Expect(s.Studied()).To(Equal(0))
	})
})
