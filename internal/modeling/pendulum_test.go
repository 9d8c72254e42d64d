package modeling_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mbsim/internal/modeling"
	"github.com/san-kum/mbsim/internal/spatial"
)

var _ = Describe("a simple pendulum", func() {
	var (
		sys    modeling.MultibodySystem
		mb     modeling.Multibody
		ground modeling.RigidBody
		link   modeling.RigidBody
		hinge  modeling.Joint
	)

	BeforeEach(func() {
		var err error
		sys, err = modeling.NewMultibodySystem("lab")
		Expect(err).NotTo(HaveOccurred())

		mb, err = sys.AddMultibody("pendulum")
		Expect(err).NotTo(HaveOccurred())

		ground, err = mb.AddGroundBody()
		Expect(err).NotTo(HaveOccurred())

		link, err = mb.AddRigidBody("link1")
		Expect(err).NotTo(HaveOccurred())

		bob, err := modeling.NewPointMass("bob", 1.0)
		Expect(err).NotTo(HaveOccurred())
		_, err = link.AddMassElementLikeAt(bob, "bob", modeling.Vector(spatial.Vec3{0, -1, 0}))
		Expect(err).NotTo(HaveOccurred())

		hinge, err = mb.AddJointBetween(modeling.PinJoint, "hinge", modeling.Ref(ground), modeling.Ref(link))
		Expect(err).NotTo(HaveOccurred())
	})

	It("connects ground to the link with a pin joint", func() {
		Expect(hinge.Type()).To(Equal(modeling.TorsionJoint))

		ref, err := hinge.ReferenceBody()
		Expect(err).NotTo(HaveOccurred())
		Expect(ref.Same(ground)).To(BeTrue())

		mov, err := hinge.MovingBody()
		Expect(err).NotTo(HaveOccurred())
		Expect(mov.Same(link)).To(BeTrue())

		Expect(mb.Mobilities()).To(Equal(1))
	})

	It("derives the link's mass and centroid from its bob", func() {
		m, err := link.Mass().Real()
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(BeNumerically("~", 1.0, 1e-12))

		c, err := link.Centroid().Station()
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(spatial.Vec3{0, -1, 0}))

		Expect(link.Mass().SetPlacement(modeling.Real(3))).To(MatchError(modeling.ErrReadOnly))
	})

	It("refuses a second ground body", func() {
		_, err := mb.AddGroundBody()
		Expect(err).To(MatchError(modeling.ErrGroundExists))
	})

	It("refuses a duplicate body name", func() {
		_, err := mb.AddRigidBody("link1")
		Expect(err).To(MatchError(modeling.ErrDuplicateName))
	})

	It("downcasts only to the matching variant", func() {
		Expect(modeling.IsRigidBody(link)).To(BeTrue())
		Expect(modeling.IsBody(link)).To(BeTrue())
		Expect(modeling.IsJoint(link)).To(BeFalse())
		Expect(modeling.IsDeformableBody(link)).To(BeFalse())

		_, err := modeling.ToJoint(link)
		Expect(err).To(MatchError(modeling.ErrWrongKind))

		j, ok := modeling.AsJoint(hinge)
		Expect(ok).To(BeTrue())
		Expect(j.Name()).To(Equal("hinge"))
	})

	It("finds the body a feature is placed on", func() {
		mass, err := link.Lookup("bob/mass")
		Expect(err).NotTo(HaveOccurred())

		body, err := modeling.PlacementBody(mass)
		Expect(err).NotTo(HaveOccurred())
		Expect(body.Same(link)).To(BeTrue())

		loose, err := mb.AddStation("loose", modeling.Vector(spatial.Vec3{}))
		Expect(err).NotTo(HaveOccurred())
		_, err = modeling.PlacementBody(loose)
		Expect(err).To(MatchError(modeling.ErrNoEnclosingBody))
	})

	It("forms a valid tree rooted at ground", func() {
		links, err := mb.Topology()
		Expect(err).NotTo(HaveOccurred())
		Expect(links).To(HaveLen(2))
		Expect(links[1].Inboard.Same(hinge)).To(BeTrue())
		Expect(links[1].Parent.Same(ground)).To(BeTrue())
		Expect(links[1].Level).To(Equal(1))
	})

	It("prints the model", func() {
		out := sys.String()
		Expect(out).To(ContainSubstring(`Multibody "pendulum" [1 dof]`))
		Expect(out).To(ContainSubstring(`RigidBody "link1"`))
		Expect(out).To(ContainSubstring(`Joint "hinge" [torsion @lab/pendulum/Ground -> @lab/pendulum/link1]`))
	})

	Context("when the model is copied", func() {
		It("keeps the copy independent of the original", func() {
			cp, err := sys.Clone()
			Expect(err).NotTo(HaveOccurred())

			bob, err := cp.Lookup("pendulum/link1/bob")
			Expect(err).NotTo(HaveOccurred())
			el, err := modeling.ToMassElement(bob)
			Expect(err).NotTo(HaveOccurred())
			Expect(el.SetMass(4)).To(Succeed())

			m, _ := link.Mass().Real()
			Expect(m).To(BeNumerically("~", 1.0, 1e-12))

			copied, err := cp.Lookup("pendulum/link1")
			Expect(err).NotTo(HaveOccurred())
			body, err := modeling.ToBody(copied)
			Expect(err).NotTo(HaveOccurred())
			cm, _ := body.Mass().Real()
			Expect(cm).To(BeNumerically("~", 4.0, 1e-12))
		})

		It("adds an independent copy of a rigid body", func() {
			twin, err := mb.AddRigidBodyLike(link, "link2")
			Expect(err).NotTo(HaveOccurred())
			Expect(twin.IsGround()).To(BeFalse())

			els := twin.MassElements()
			Expect(els).To(HaveLen(1))
			Expect(els[0].SetMass(7)).To(Succeed())

			m, _ := link.Mass().Real()
			Expect(m).To(BeNumerically("~", 1.0, 1e-12))
		})
	})
})
