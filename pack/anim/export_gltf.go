package anim

import (
	"fmt"

	"github.com/qmuntal/gltf"
)

type GLTFPoseExported struct {
	RootNode  uint32
	BoneNodes []uint32
}

// ExportGLTF appends one frame of the sequence to doc: a root node with one child per bone.
func (ps *PoseSequence) ExportGLTF(doc *gltf.Document, name string, frame int, rp RotationPolicy) (*GLTFPoseExported, error) {
	if err := ps.CheckFrame(frame); err != nil {
		return nil, err
	}

	gpe := &GLTFPoseExported{
		BoneNodes: make([]uint32, ps.BoneCount),
	}
	for bone, bt := range ps.Frame(frame) {
		q := rp.Quat(bt.Rotation).Normalize()
		gpe.BoneNodes[bone] = uint32(len(doc.Nodes))
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        fmt.Sprintf("bone_%d", bone),
			Translation: bt.Translation,
			Rotation:    q.V.Vec4(q.W),
			Scale:       bt.Scale,
		})
	}

	gpe.RootNode = uint32(len(doc.Nodes))
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name:     fmt.Sprintf("%s_frame_%d", name, frame),
		Children: gpe.BoneNodes,
	})
	return gpe, nil
}

func (ps *PoseSequence) ExportGLTFDefault(name string, frame int, rp RotationPolicy) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	gpe, err := ps.ExportGLTF(doc, name, frame, rp)
	if err != nil {
		return nil, err
	}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, gpe.RootNode)
	return doc, nil
}
