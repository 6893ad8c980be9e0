package genie

import "encoding/xml"

// Zone is the parsed form of a Genie map file:
//
//	<zone id="1" name="The Crossing">
//	  <node id="68" name="[Town Green, Northwest]" note="Green" color="#00FF00">
//	    <description>...</description>
//	    <position x="0" y="0" z="0" />
//	    <arc exit="east" move="east" destination="1" />
//	  </node>
//	  <label text="...">...</label>
//	</zone>
//
// Labels are map decorations and are not decoded.
type Zone struct {
	XMLName xml.Name `xml:"zone"`
	ID      string   `xml:"id,attr"`
	Name    string   `xml:"name,attr"`
	Nodes   []Node   `xml:"node"`
}

// Node is one room.
type Node struct {
	ID           string   `xml:"id,attr"`
	Name         string   `xml:"name,attr"`
	Note         string   `xml:"note,attr"`
	Color        string   `xml:"color,attr"`
	Descriptions []string `xml:"description"`
	Position     Position `xml:"position"`
	Arcs         []Arc    `xml:"arc"`
}

// Position is a node's map coordinate.
type Position struct {
	X int `xml:"x,attr"`
	Y int `xml:"y,attr"`
	Z int `xml:"z,attr"`
}

// Arc is one exit. Hidden is "True"/"False" in files written by Genie.
type Arc struct {
	Exit        string `xml:"exit,attr"`
	Move        string `xml:"move,attr"`
	Destination string `xml:"destination,attr"`
	Hidden      string `xml:"hidden,attr"`
}
