// Package touchpoint tracks physical input contacts (the mouse and up to ten
// touch or pen contacts) inside an interactive 2D scene and resolves, frame by
// frame, which scene object each contact is interacting with.
//
// An [Input] owns a fixed arena of [Pointer] slots. Slot 0 is the mouse;
// slots 1-10 are touch contacts. Platform code feeds raw [Event] values to
// [Pointer.Press], [Pointer.Move], [Pointer.Leave] and [Pointer.Release] (or
// to [Input.StartPointer], [Input.UpdatePointer] and [Input.StopPointer] for
// touches) and calls [Input.Update] once per frame. The [ebitensource]
// package does this for Ebitengine games.
//
// # Targets
//
// Scene objects take part by implementing [Candidate] and registering with
// [Input.AddCandidate]. On every press and move the pointer resolves a single
// current target among the candidates:
//
//   - a higher [Candidate.Priority] always wins;
//   - among equal priorities the higher [Candidate.RenderOrder] (drawn later,
//     visually on top) wins;
//   - candidates implementing [ExactCandidate] run their expensive test only
//     when they could still beat the best cheap hit, and at most once.
//
// When the target changes the old one receives PointerOut and the new one
// PointerOver. A [Draggable] target that reports IsDragged bypasses
// resolution until DragUpdate returns false.
//
// [Hotspot] is a ready-made candidate built on [HitRect], [HitCircle] or
// [HitPolygon], with optional dragging and a tweened snap-back.
//
// # Gestures
//
// Releases within Config.TapRate of the press fire [Input.OnTap]; a tap
// within Config.DoubleTapRate of the previous one is reported as a double tap.
// A contact held for Config.HoldRate fires [Input.OnHold] once per press.
//
//	in := touchpoint.NewInput(nil)
//	in.OnTap(func(p *touchpoint.Pointer, double bool) {
//		fmt.Println("tap at", p.X, p.Y, "double:", double)
//	})
//	box := touchpoint.NewHotspot("box", 100, 100, touchpoint.HitRect{Width: 60, Height: 60})
//	in.AddCandidate(box)
//
// # Concurrency
//
// Everything is single-threaded and synchronous. Pointers share the Input's
// resolver scratch space, so resolving two pointers concurrently is undefined
// behavior; callers must serialize all calls.
//
// [ebitensource]: https://pkg.go.dev/github.com/phanxgames/touchpoint/ebitensource
package touchpoint
