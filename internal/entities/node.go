package entities

type Node struct {
	Meta

	lat float64
	lon float64
}

func NewNode(meta Meta, lat float64, lon float64) *Node {
	return &Node{
		Meta: meta,
		lat:  lat,
		lon:  lon,
	}
}

func (n *Node) GetLat() float64 {
	return n.lat
}

func (n *Node) GetLon() float64 {
	return n.lon
}
