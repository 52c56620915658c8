package timing

import (
	"bytes"
	"log"

	"go.uber.org/mock/gomock"

	"github.com/sarchlab/dpram/sim/hooking"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func hookFunc(f func(pos string)) hooking.Hook {
	return hooking.HookFunc(func(ctx hooking.HookCtx) {
		f(ctx.Pos.Name)
	})
}

var _ = Describe("TickingComponent", func() {
	var (
		mockCtrl *gomock.Controller
		ticker   *MockTicker
		engine   *SerialEngine
		comp     *TickingComponent
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		ticker = NewMockTicker(mockCtrl)
		engine = NewSerialEngine()
		comp = NewTickingComponent("Comp", engine, 1*GHz, ticker)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should keep ticking while making progress", func() {
		var tickTimes []VTimeInSec

		gomock.InOrder(
			ticker.EXPECT().Tick().DoAndReturn(func() bool {
				tickTimes = append(tickTimes, engine.Now())
				return true
			}),
			ticker.EXPECT().Tick().DoAndReturn(func() bool {
				tickTimes = append(tickTimes, engine.Now())
				return true
			}),
			ticker.EXPECT().Tick().DoAndReturn(func() bool {
				tickTimes = append(tickTimes, engine.Now())
				return false
			}),
		)

		comp.TickNow()
		Expect(engine.Run()).To(Succeed())

		Expect(tickTimes).To(HaveLen(3))
		Expect(tickTimes[0]).To(BeNumerically("~", 0, 1e-18))
		Expect(tickTimes[1]).To(BeNumerically("~", 1e-9, 1e-18))
		Expect(tickTimes[2]).To(BeNumerically("~", 2e-9, 1e-18))
	})

	It("should not schedule the same tick twice", func() {
		ticker.EXPECT().Tick().Return(false).Times(1)

		comp.TickLater()
		comp.TickLater()

		Expect(engine.Run()).To(Succeed())
	})

	It("should be named", func() {
		Expect(comp.Name()).To(Equal("Comp"))
	})

	It("should log handled events", func() {
		buf := new(bytes.Buffer)
		engine.AcceptHook(NewEventLogger(log.New(buf, "", 0)))
		ticker.EXPECT().Tick().Return(false)

		comp.TickNow()
		Expect(engine.Run()).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("timing.TickEvent -> Comp"))
	})
})
