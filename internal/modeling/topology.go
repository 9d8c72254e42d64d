package modeling

// Link is one body of a validated multibody tree together with the joint
// connecting it to its parent body. Ground has no inboard joint.
type Link struct {
	Body    Body
	Inboard Joint
	Parent  Body
	Level   int
}

// Topology checks that the joints form a tree rooted at ground: every joint
// connected, every non-ground body moved by exactly one joint and reachable
// from ground. It returns the bodies in base-to-tip order.
func (m Multibody) Topology() ([]Link, error) {
	ground, err := m.GroundFrame()
	if err != nil {
		return nil, err
	}
	name := m.Path()

	inboard := make(map[ID]Joint)
	outboard := make(map[ID][]ID)
	for _, j := range m.Joints() {
		if !j.Connected() {
			return nil, topologyf(name, "joint %q is not connected", j.Name())
		}
		ref, err := j.ReferenceBody()
		if err != nil {
			return nil, topologyf(name, "joint %q: %v", j.Name(), err)
		}
		mov, err := j.MovingBody()
		if err != nil {
			return nil, topologyf(name, "joint %q: %v", j.Name(), err)
		}
		if mov.id == ground.id {
			return nil, topologyf(name, "joint %q moves ground", j.Name())
		}
		if prev, dup := inboard[mov.id]; dup {
			return nil, topologyf(name, "body %q has two inboard joints: %q and %q", mov.Name(), prev.Name(), j.Name())
		}
		inboard[mov.id] = j
		outboard[ref.id] = append(outboard[ref.id], mov.id)
	}

	links := []Link{{Body: ground}}
	seen := map[ID]bool{ground.id: true}
	for i := 0; i < len(links); i++ {
		parent := links[i]
		for _, child := range outboard[parent.Body.id] {
			if seen[child] {
				continue
			}
			seen[child] = true
			links = append(links, Link{
				Body:    Body{Subsystem{tree: m.tree, id: child}},
				Inboard: inboard[child],
				Parent:  parent.Body,
				Level:   parent.Level + 1,
			})
		}
	}

	for _, b := range m.Bodies() {
		if !seen[b.id] {
			return nil, topologyf(name, "body %q is not connected to ground", b.Name())
		}
	}
	return links, nil
}
