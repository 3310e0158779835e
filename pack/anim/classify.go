package anim

import "fmt"

type Group int

const (
	GROUP_ROTATION Group = iota
	GROUP_TRANSLATION
	GROUP_SCALE
	GROUPS_COUNT
)

func (g Group) String() string {
	switch g {
	case GROUP_ROTATION:
		return "rotation"
	case GROUP_TRANSLATION:
		return "translation"
	case GROUP_SCALE:
		return "scale"
	}
	return fmt.Sprintf("Group(%d)", int(g))
}

type ChannelClass uint8

const (
	CLASS_UNUSED ChannelClass = iota
	CLASS_CONSTANT
	CLASS_ANIMATED
)

func (c ChannelClass) String() string {
	switch c {
	case CLASS_UNUSED:
		return "unused"
	case CLASS_CONSTANT:
		return "constant"
	case CLASS_ANIMATED:
		return "animated"
	}
	return fmt.Sprintf("ChannelClass(%d)", int(c))
}

func (c ChannelClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

const CODE_ANIMATED = 2

// ClassPolicy resolves a raw 2-bit code. Code 2 is always animated,
// the policy only decides what the other codes mean.
type ClassPolicy func(code uint8) ChannelClass

// DefaultClassPolicy treats every non-animated code as constant.
func DefaultClassPolicy(code uint8) ChannelClass {
	if code == CODE_ANIMATED {
		return CLASS_ANIMATED
	}
	return CLASS_CONSTANT
}

// ZeroUnusedPolicy treats code 0 as a channel without data.
func ZeroUnusedPolicy(code uint8) ChannelClass {
	switch code {
	case CODE_ANIMATED:
		return CLASS_ANIMATED
	case 0:
		return CLASS_UNUSED
	}
	return CLASS_CONSTANT
}

func ClassPolicyByName(name string) (ClassPolicy, error) {
	switch name {
	case "", "default":
		return DefaultClassPolicy, nil
	case "zero_unused":
		return ZeroUnusedPolicy, nil
	}
	return nil, fmt.Errorf("unknown class policy %q", name)
}

// Classification keeps codes in file order: all rotation channels, then translation, then scale.
type Classification struct {
	BoneCount int
	Codes     []uint8
	Classes   []ChannelClass
	Animated  [GROUPS_COUNT]int
	Constant  [GROUPS_COUNT]int
}

func (c *Classification) index(bone int, g Group) int { return int(g)*c.BoneCount + bone }

func (c *Classification) Class(bone int, g Group) ChannelClass {
	return c.Classes[c.index(bone, g)]
}

func (c *Classification) Code(bone int, g Group) uint8 {
	return c.Codes[c.index(bone, g)]
}

func (c *Classification) TotalAnimated() int {
	return c.Animated[GROUP_ROTATION] + c.Animated[GROUP_TRANSLATION] + c.Animated[GROUP_SCALE]
}

// Group returns the run of classes of one group, indexed by bone.
func (c *Classification) Group(g Group) []ChannelClass {
	return c.Classes[int(g)*c.BoneCount : int(g+1)*c.BoneCount]
}

func classify(data []byte, h *Header, policy ClassPolicy) (*Classification, error) {
	if h.Control == nil {
		return nil, formatErrorf(KIND_UNSUPPORTED_VERSION, HEADER_VERSION_OFFSET, "%v has no classification bitfield", h.Format)
	}
	if policy == nil {
		policy = DefaultClassPolicy
	}

	start, end := h.Section(SECTION_BITFIELD), h.Section(SECTION_CONSTANTS)
	size := end - start
	if size%BITFIELD_WORD_SIZE != 0 {
		return nil, formatErrorf(KIND_BAD_BITFIELD, start, "bitfield size 0x%x is not a whole number of words", size)
	}
	words, err := newCursor(data, start).Bytes(size)
	if err != nil {
		return nil, err
	}

	boneCount := int(h.Control.BoneCount)
	total := boneCount * int(GROUPS_COUNT)
	br := newBitfieldReader(words)
	if br.Len() < total {
		return nil, formatErrorf(KIND_BAD_BITFIELD, start, "bitfield holds %d codes, need %d for %d bones",
			br.Len(), total, boneCount)
	}

	c := &Classification{
		BoneCount: boneCount,
		Codes:     make([]uint8, total),
		Classes:   make([]ChannelClass, total),
	}
	for i := range c.Codes {
		code := br.Next()
		class := policy(code)
		if code == CODE_ANIMATED {
			class = CLASS_ANIMATED
		} else if class == CLASS_ANIMATED {
			class = CLASS_CONSTANT
		}
		c.Codes[i] = code
		c.Classes[i] = class

		g := i / boneCount
		switch class {
		case CLASS_ANIMATED:
			c.Animated[g]++
		case CLASS_CONSTANT:
			c.Constant[g]++
		}
	}
	return c, nil
}

// Classify decodes the channel classification of a V1 buffer with the default policy.
func Classify(data []byte, h *Header) ([]ChannelClass, error) {
	c, err := classify(data, h, DefaultClassPolicy)
	if err != nil {
		return nil, err
	}
	return c.Classes, nil
}

