package timing

import (
	"errors"

	"go.uber.org/mock/gomock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingHandler struct {
	handled []VTimeInSec
	names   []string
	engine  Engine
	err     error
}

type namedEvent struct {
	EventBase
	name string
}

func newNamedEvent(
	t VTimeInSec,
	handler Handler,
	name string,
	secondary bool,
) namedEvent {
	evt := namedEvent{name: name}
	evt.time = t
	evt.handler = handler
	evt.secondary = secondary

	return evt
}

func (h *recordingHandler) Handle(e Event) error {
	h.handled = append(h.handled, e.Time())
	h.names = append(h.names, e.(namedEvent).name)

	return h.err
}

var _ = Describe("SerialEngine", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *SerialEngine
		handler  *recordingHandler
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewSerialEngine()
		handler = &recordingHandler{engine: engine}
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should run events in time order", func() {
		engine.Schedule(newNamedEvent(3, handler, "c", false))
		engine.Schedule(newNamedEvent(1, handler, "a", false))
		engine.Schedule(newNamedEvent(2, handler, "b", false))

		err := engine.Run()

		Expect(err).NotTo(HaveOccurred())
		Expect(handler.names).To(Equal([]string{"a", "b", "c"}))
		Expect(engine.Now()).To(Equal(VTimeInSec(3)))
	})

	It("should keep scheduling order among same-time events", func() {
		engine.Schedule(newNamedEvent(1, handler, "first", false))
		engine.Schedule(newNamedEvent(1, handler, "second", false))
		engine.Schedule(newNamedEvent(1, handler, "third", false))

		Expect(engine.Run()).To(Succeed())
		Expect(handler.names).To(Equal([]string{"first", "second", "third"}))
	})

	It("should run secondary events after primary events", func() {
		engine.Schedule(newNamedEvent(1, handler, "secondary", true))
		engine.Schedule(newNamedEvent(1, handler, "primary", false))

		Expect(engine.Run()).To(Succeed())
		Expect(handler.names).To(Equal([]string{"primary", "secondary"}))
	})

	It("should stop on handler error", func() {
		handler.err = errors.New("boom")
		engine.Schedule(newNamedEvent(1, handler, "a", false))
		engine.Schedule(newNamedEvent(2, handler, "b", false))

		err := engine.Run()

		Expect(err).To(MatchError("boom"))
		Expect(handler.names).To(Equal([]string{"a"}))
	})

	It("should pass events to a mocked handler", func() {
		mockHandler := NewMockHandler(mockCtrl)
		evt := newNamedEvent(1, mockHandler, "a", false)
		mockHandler.EXPECT().Handle(evt).Return(nil)

		engine.Schedule(evt)

		Expect(engine.Run()).To(Succeed())
	})

	It("should panic when scheduling in the past", func() {
		engine.Schedule(newNamedEvent(2, handler, "a", false))
		Expect(engine.Run()).To(Succeed())

		Expect(func() {
			engine.Schedule(newNamedEvent(1, handler, "b", false))
		}).To(Panic())
	})

	It("should invoke hooks around each event", func() {
		var positions []string
		engine.AcceptHook(hookFunc(func(pos string) {
			positions = append(positions, pos)
		}))
		engine.Schedule(newNamedEvent(1, handler, "a", false))

		Expect(engine.Run()).To(Succeed())
		Expect(positions).To(Equal([]string{"BeforeEvent", "AfterEvent"}))
	})

	It("should report whether it is paused", func() {
		Expect(engine.IsPaused()).To(BeFalse())

		engine.Pause()
		engine.Pause()
		Expect(engine.IsPaused()).To(BeTrue())

		engine.Continue()
		Expect(engine.IsPaused()).To(BeFalse())
	})
})
