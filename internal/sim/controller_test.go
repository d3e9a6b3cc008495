package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/motionlab/internal/kinematics"
)

var _ = Describe("Controller", func() {
	var (
		track *testTrack
		ctrl  *Controller
	)

	BeforeEach(func() {
		track = &testTrack{velocity: 5}
		var err error
		ctrl, err = NewController(track)
		Expect(err).NotTo(HaveOccurred())
	})

	tickN := func(n int) {
		for i := 0; i < n; i++ {
			ctrl.Tick()
		}
	}

	Context("when idle", func() {
		It("does not advance the clock", func() {
			tickN(10)
			Expect(ctrl.Clock().Elapsed).To(BeZero())
			Expect(ctrl.Ticks()).To(BeZero())
			Expect(ctrl.Phase()).To(Equal(PhaseIdle))
		})

		It("ignores pause toggles", func() {
			ctrl.TogglePause()
			Expect(ctrl.Clock().Paused).To(BeFalse())
			Expect(ctrl.Phase()).To(Equal(PhaseIdle))
		})
	})

	Context("when running", func() {
		BeforeEach(func() {
			ctrl.Start()
			tickN(20)
		})

		It("advances by the fixed timestep", func() {
			Expect(ctrl.Clock().Elapsed).To(BeNumerically("~", 20*DefaultTimestep, 1e-9))
			Expect(ctrl.Pose().Position).To(BeNumerically("~", 5*20*DefaultTimestep, 1e-9))
			Expect(ctrl.Ticks()).To(Equal(20))
		})

		It("preserves elapsed across pause and resume", func() {
			before := ctrl.Clock().Elapsed
			ctrl.TogglePause()
			Expect(ctrl.Phase()).To(Equal(PhasePaused))
			tickN(5)
			Expect(ctrl.Clock().Elapsed).To(Equal(before))

			ctrl.TogglePause()
			Expect(ctrl.Clock().Elapsed).To(Equal(before))
			ctrl.Tick()
			Expect(ctrl.Clock().Elapsed).To(BeNumerically("~", before+DefaultTimestep, 1e-12))
		})

		It("restarts from zero on start", func() {
			ctrl.Start()
			Expect(ctrl.Clock().Elapsed).To(BeZero())
			Expect(ctrl.Phase()).To(Equal(PhaseRunning))
		})

		It("sees a parameter change on the very next tick", func() {
			Expect(ctrl.SetParameter("velocity", 10)).To(Succeed())
			ctrl.Tick()
			Expect(ctrl.Pose().Position).To(BeNumerically("~", 10*21*DefaultTimestep, 1e-9))
		})
	})

	Context("on reaching the end of the track", func() {
		BeforeEach(func() {
			ctrl.Start()
			tickN(1000)
		})

		It("clamps, freezes and reports once", func() {
			Expect(ctrl.Phase()).To(Equal(PhaseCompleted))
			Expect(ctrl.Clock().Running).To(BeFalse())
			Expect(ctrl.Pose().Position).To(Equal(kinematics.TrackLength))

			r, ok := ctrl.Result()
			Expect(ok).To(BeTrue())
			Expect(r.FinalPosition).To(Equal(kinematics.TrackLength))
			Expect(r.MaxPosition).To(Equal(kinematics.TrackLength))

			frozen := ctrl.Clock().Elapsed
			f := ctrl.Tick()
			Expect(f.Events).To(BeEmpty())
			Expect(ctrl.Clock().Elapsed).To(Equal(frozen))
		})

		It("emits exactly one completion event", func() {
			var completions int
			var err error
			ctrl, err = NewController(track, WithPresenter(PresenterFunc(func(f Frame) {
				for _, e := range f.Events {
					if e.Kind == EventCompleted {
						completions++
					}
				}
			})))
			Expect(err).NotTo(HaveOccurred())
			ctrl.Start()
			tickN(1000)
			Expect(completions).To(Equal(1))
		})

		It("cannot be paused", func() {
			ctrl.TogglePause()
			Expect(ctrl.Clock().Paused).To(BeFalse())
			Expect(ctrl.Phase()).To(Equal(PhaseCompleted))
		})

		It("clears completion on start", func() {
			ctrl.Start()
			Expect(ctrl.Clock().Completed).To(BeFalse())
			_, ok := ctrl.Result()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Reset", func() {
		It("is idempotent", func() {
			ctrl.Start()
			tickN(37)
			ctrl.Reset()
			once := ctrl.Snapshot()
			ctrl.Reset()
			twice := ctrl.Snapshot()

			Expect(twice.Clock).To(Equal(once.Clock))
			Expect(twice.Pose).To(Equal(once.Pose))
			Expect(twice.MaxPosition).To(Equal(once.MaxPosition))
			Expect(twice.Result).To(BeNil())
			Expect(twice.Params).To(Equal(once.Params))
			Expect(twice.Phase).To(Equal(PhaseIdle))
		})

		It("returns a completed demo to idle", func() {
			ctrl.Start()
			tickN(1000)
			ctrl.Reset()
			Expect(ctrl.Phase()).To(Equal(PhaseIdle))
			Expect(ctrl.Clock().Elapsed).To(BeZero())
			Expect(ctrl.Pose()).To(Equal(kinematics.Pose{}))
		})
	})
})
