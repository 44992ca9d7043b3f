package kernel

import (
	"sync"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Barrier", func() {
	It("should hold every party until the last arrives", func() {
		const parties, rounds = 16, 10

		var (
			counter int64
			wg      sync.WaitGroup
			mu      sync.Mutex
			seen    []int64
		)

		b := newBarrier(parties)

		for p := 0; p < parties; p++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for r := 0; r < rounds; r++ {
					atomic.AddInt64(&counter, 1)
					b.wait()

					mu.Lock()
					seen = append(seen, atomic.LoadInt64(&counter))
					mu.Unlock()

					b.wait()
				}
			}()
		}
		wg.Wait()

		Expect(b.generation()).To(Equal(2 * rounds))
		Expect(seen).To(HaveLen(parties * rounds))

		for i, c := range seen {
			Expect(c).To(Equal(int64(parties * (i/parties + 1))))
		}
	})

	It("should run the action once while every party is parked", func() {
		const parties, rounds = 8, 20

		var (
			running int64
			actions int
			busy    []int64
			wg      sync.WaitGroup
		)

		b := newBarrier(parties)

		for p := 0; p < parties; p++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				atomic.AddInt64(&running, 1)

				for r := 0; r < rounds; r++ {
					atomic.AddInt64(&running, -1)
					b.do(func() {
						actions++
						busy = append(busy, atomic.LoadInt64(&running))
					})
					atomic.AddInt64(&running, 1)
				}
			}()
		}
		wg.Wait()

		Expect(actions).To(Equal(rounds))
		Expect(busy).To(HaveEach(int64(0)))
	})

	It("should open immediately for a single party", func() {
		ran := false
		b := newBarrier(1)

		b.do(func() { ran = true })

		Expect(ran).To(BeTrue())
		Expect(b.generation()).To(Equal(1))
	})
})
