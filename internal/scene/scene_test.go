package scene_test

import (
	"math/rand"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ambient/internal/ambient"
	"github.com/san-kum/ambient/internal/ambient/ambienttest"
	"github.com/san-kum/ambient/internal/cursor"
	"github.com/san-kum/ambient/internal/frame"
	"github.com/san-kum/ambient/internal/scene"
	"github.com/san-kum/ambient/internal/stripfield"
)

var _ = Describe("Scene", func() {
	var (
		host *ambienttest.Host
		pump *frame.Pump
		sc   *scene.Scene
	)

	BeforeEach(func() {
		host = ambienttest.NewHost(stripfield.Container, cursor.Container)
		pump = frame.NewPump()
		sc = scene.New(host,
			scene.WithRand(rand.New(rand.NewSource(17))),
			scene.WithNoise(ambienttest.ConstNoise(0.4)),
		)
	})

	It("rejects an empty viewport", func() {
		err := sc.Start(pump, 0, 600)
		Expect(err).To(MatchError(ambient.ErrInvalidViewport))
		Expect(pump.Running()).To(BeFalse())
	})

	It("mounts both layers on a wide desktop viewport", func() {
		Expect(sc.Start(pump, 1280, 800)).To(Succeed())
		Expect(sc.Field().Active()).To(BeTrue())
		Expect(sc.Follower().Active()).To(BeTrue())
		Expect(sc.Field().Profile().Class).To(Equal(ambient.Wide))

		Expect(pump.Step(3)).To(Equal(3))
		Expect(sc.Frames()).To(BeNumerically("==", 3))
		Expect(sc.Follower().Renders()).To(Equal(3))
	})

	It("keeps running without a background container", func() {
		host = ambienttest.NewHost(cursor.Container)
		sc = scene.New(host, scene.WithSeed(1), scene.WithNoise(ambienttest.ConstNoise(0)))
		Expect(sc.Start(pump, 1440, 900)).To(Succeed())
		Expect(sc.Field().Active()).To(BeFalse())

		pump.Step(2)
		Expect(sc.Follower().Renders()).To(Equal(2))
	})

	It("applies resize events at the next tick, not before", func() {
		Expect(sc.Start(pump, 1280, 800)).To(Succeed())
		sc.Resize(500, 800)
		Expect(sc.Field().Profile().Class).To(Equal(ambient.Wide))

		pump.Tick()
		Expect(sc.Field().Profile().Class).To(Equal(ambient.Narrow))
		w, h := sc.Size()
		Expect(w).To(Equal(500))
		Expect(h).To(Equal(800))
	})

	It("tears the cursor down below the width gate and recreates it above", func() {
		Expect(sc.Start(pump, 1200, 800)).To(Succeed())
		pump.Step(4)
		Expect(sc.Follower().Renders()).To(Equal(4))

		sc.Resize(800, 800)
		pump.Step(5)
		Expect(sc.Follower().Active()).To(BeFalse())
		Expect(sc.Follower().Renders()).To(Equal(4))
		Expect(host.PointerVisible).To(BeTrue())
		Expect(host.Surfaces).NotTo(HaveKey(cursor.Container))

		sc.Resize(1200, 800)
		pump.Step(2)
		Expect(sc.Follower().Generation()).To(Equal(2))
		Expect(sc.Follower().Renders()).To(Equal(2))
		Expect(host.PointerVisible).To(BeFalse())
	})

	It("forwards pointer moves as the follower target", func() {
		Expect(sc.Start(pump, 1600, 900)).To(Succeed())
		sc.PointerMove(400, 200)
		pump.Tick()
		Expect(sc.Follower().Target()).To(Equal(ambient.Point{X: 400, Y: 200}))
		Expect(sc.Follower().Position()).To(Equal(ambient.Point{X: 300, Y: 150}))
	})

	It("releases every surface on stop", func() {
		Expect(sc.Start(pump, 1600, 900)).To(Succeed())
		sc.Stop()
		Expect(host.Surfaces).To(BeEmpty())
		Expect(pump.Step(3)).To(Equal(0))
		Expect(sc.Field().Active()).To(BeFalse())
	})

	Context("with a wall-clock ticker", func() {
		It("takes events from other goroutines between ticks", func() {
			tk := frame.NewTicker(500)
			Expect(sc.Start(tk, 1280, 800)).To(Succeed())

			var wg sync.WaitGroup
			for i := 0; i < 4; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					for j := 0; j < 50; j++ {
						sc.PointerMove(float64(i*100+j), float64(j))
						sc.Resize(1100+i, 700)
					}
				}(i)
			}
			wg.Wait()

			sc.Resize(1500, 900)
			seen := sc.Frames()
			Eventually(sc.Frames, time.Second, 5*time.Millisecond).Should(BeNumerically(">", seen+2))

			sc.Stop()
			frames := sc.Frames()
			Consistently(sc.Frames, 50*time.Millisecond).Should(Equal(frames))

			w, h := sc.Size()
			Expect([]int{w, h}).To(Equal([]int{1500, 900}))
			Expect(sc.Follower().Target().Y).To(BeNumerically("<", 50))
		})
	})
})
