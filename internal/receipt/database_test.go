package receipt

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// describeDB runs the behaviour every DB implementation shares
func describeDB(newDB func() DB) {
	var db DB

	BeforeEach(func() {
		db = newDB()
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("SaveScore", func() {
		var (
			record *ScoreRecord
			err    error
		)

		BeforeEach(func() {
			record = &ScoreRecord{
				ID:        "test-id",
				Points:    28,
				CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
			}
		})

		JustBeforeEach(func() {
			err = db.SaveScore(record)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should save the score", func() {
				saved, getErr := db.GetScore("test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.Points).To(Equal(28))
				Expect(saved.CreatedAt.Equal(record.CreatedAt)).To(BeTrue())
			})
		})

		When("a score with the same ID exists", func() {
			BeforeEach(func() {
				Expect(db.SaveScore(&ScoreRecord{ID: "test-id", Points: 5})).To(Succeed())
			})

			It("should overwrite it", func() {
				saved, getErr := db.GetScore("test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.Points).To(Equal(28))
			})
		})
	})

	Describe("GetScore", func() {
		var (
			scoreID string
			record  *ScoreRecord
			err     error
		)

		JustBeforeEach(func() {
			record, err = db.GetScore(scoreID)
		})

		When("score exists", func() {
			BeforeEach(func() {
				scoreID = "existing-id"
				Expect(db.SaveScore(&ScoreRecord{ID: scoreID, Points: 109})).To(Succeed())
			})

			It("should return the score", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(record.ID).To(Equal("existing-id"))
				Expect(record.Points).To(Equal(109))
			})
		})

		When("score does not exist", func() {
			BeforeEach(func() {
				scoreID = "nonexistent-id"
			})

			It("returns ErrNotFound", func() {
				Expect(err).To(MatchError(ErrNotFound))
				Expect(err.Error()).To(ContainSubstring("nonexistent-id"))
			})

			It("should not return a record", func() {
				Expect(record).To(BeNil())
			})
		})
	})

	Describe("concurrent access", func() {
		It("should keep every record written in parallel", func() {
			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func(i int) {
					defer GinkgoRecover()
					defer wg.Done()
					Expect(db.SaveScore(&ScoreRecord{ID: fmt.Sprintf("id-%d", i), Points: i})).To(Succeed())
					_, _ = db.GetScore(fmt.Sprintf("id-%d", i/2))
				}(i)
			}
			wg.Wait()

			for i := 0; i < 50; i++ {
				saved, err := db.GetScore(fmt.Sprintf("id-%d", i))
				Expect(err).NotTo(HaveOccurred())
				Expect(saved.Points).To(Equal(i))
			}
		})
	})
}

var _ = Describe("MemoryDB", func() {
	describeDB(func() DB {
		return NewMemoryDB()
	})

	It("should not share the stored record with the caller", func() {
		db := NewMemoryDB()
		record := &ScoreRecord{ID: "copy", Points: 1}
		Expect(db.SaveScore(record)).To(Succeed())
		record.Points = 99

		saved, err := db.GetScore("copy")
		Expect(err).NotTo(HaveOccurred())
		Expect(saved.Points).To(Equal(1))
	})
})

var _ = Describe("BoltDB", func() {
	describeDB(func() DB {
		db, err := NewBoltDB(filepath.Join(GinkgoT().TempDir(), "test.db"))
		Expect(err).NotTo(HaveOccurred())
		return db
	})

	Describe("NewBoltDB", func() {
		It("should keep scores across reopening the file", func() {
			dbPath := filepath.Join(GinkgoT().TempDir(), "reopen.db")

			db, err := NewBoltDB(dbPath)
			Expect(err).NotTo(HaveOccurred())
			Expect(db.SaveScore(&ScoreRecord{ID: "persisted", Points: 28})).To(Succeed())
			Expect(db.Close()).To(Succeed())

			db, err = NewBoltDB(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer db.Close()

			saved, err := db.GetScore("persisted")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.Points).To(Equal(28))
		})

		It("returns the error when the path is a directory", func() {
			_, err := NewBoltDB(GinkgoT().TempDir())
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("opening boltdb"))
		})
	})
})
