// Package modeling provides the user-facing object model for describing an
// articulated mechanical system before it is handed to anything that
// simulates it.
//
// A model is a tree of named features held in an arena ([Tree]) and
// addressed through lightweight views:
//
//   - [Multibody]: a ground body, further bodies and the joints between them
//   - [RigidBody], [DeformableBody]: bodies, each a frame with derived
//     mass and centroid measures
//   - [MassElement]: point, cylinder and brick masses attached to rigid bodies
//   - [Joint]: a typed connection between two placements
//   - [MultibodySystem]: the top-level container used for output
//
// Views are (tree, id) pairs. Adding a feature returns a view of the new
// node; copying a model with Clone produces an independent tree, so views of
// the original never alias the copy.
//
// # Placements
//
// Every valued feature carries a [Placement]: a constant, a reference to
// another feature ([Ref]) or an expression ([Add], [Scale], [Sum], ...).
// Values are computed on demand with [Subsystem.Value].
//
// # Variants
//
// The kind of a node is closed. Use [Subsystem.Kind] in a switch, or the
// Is/As/To helpers ([AsRigidBody], [ToJoint], ...) to obtain typed views.
//
// # Example
//
//	mb, _ := modeling.NewMultibody("pendulum")
//	ground, _ := mb.AddGroundBody()
//	link, _ := mb.AddRigidBody("link1")
//	bob, _ := modeling.NewPointMass("bob", 1.0)
//	link.AddMassElementLikeAt(bob, "bob", modeling.Vector(spatial.Vec3{0, -1, 0}))
//	mb.AddJointBetween(modeling.PinJoint, "hinge", modeling.Ref(ground), modeling.Ref(link))
//
// Trees are not safe for concurrent mutation.
package modeling
