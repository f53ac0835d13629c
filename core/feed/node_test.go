package feed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<shop>
  <currencies>
    <currency id="RUB" rate="1"/>
    <currency id="EUR" code="978" rate="89,50"><name>Euro</name></currency>
  </currencies>
  <categories>
    <category id="1">Tools</category>
    <category id="2" parentId="1">Hand tools</category>
  </categories>
  <offers>
    <offer id="101" available="true">
      <vendorCode>SKU-101</vendorCode>
      <name>Hammer</name>
      <price>12.34</price>
      <param name="weight">500g</param>
    </offer>
  </offers>
</shop>`

func TestParseTree(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleFeed))
	require.NoError(t, err)
	assert.Equal(t, "shop", root.Name)
	assert.Len(t, root.Children, 3)

	currencies := root.Child("currencies")
	require.NotNil(t, currencies)
	assert.Len(t, currencies.ChildrenNamed("currency"), 2)

	eur := currencies.ChildrenNamed("currency")[1]
	assert.Equal(t, "EUR", eur.AttrValue("id"))
	assert.Equal(t, "89,50", eur.AttrValue("rate"))
	assert.Equal(t, "Euro", eur.ChildText("name"))

	// Absence is explicit, not an error
	_, ok := eur.Attr("missing")
	assert.False(t, ok)
	assert.Nil(t, root.Child("promotions"))
	assert.Empty(t, root.ChildrenNamed("promotions"))
	assert.Equal(t, "", eur.ChildText("missing"))
}

func TestParseOwnText(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleFeed))
	require.NoError(t, err)

	// Category name is the element's own text
	cat := root.Child("categories").ChildrenNamed("category")[0]
	assert.Equal(t, "Tools", cat.Text())

	// An element's text does not include its children's text
	offer := root.Child("offers").Child("offer")
	assert.Equal(t, "", offer.Text())
	assert.Equal(t, "500g", offer.Child("param").Text())
}

func TestParseDoctypeTolerated(t *testing.T) {
	doc := `<?xml version="1.0"?>
<!DOCTYPE yml_catalog SYSTEM "shops.dtd">
<shop><currencies><currency id="USD" rate="1"/></currencies></shop>`

	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "shop", root.Name)
	assert.Equal(t, "USD", root.Child("currencies").Child("currency").AttrValue("id"))
}

func TestParseMalformed(t *testing.T) {
	// Truncated document
	_, err := Parse(strings.NewReader("<shop><currencies>"))
	require.Error(t, err)
	var perr *ParseError
	assert.ErrorAs(t, err, &perr)

	// No root element at all
	_, err = Parse(strings.NewReader("   "))
	assert.ErrorAs(t, err, &perr)
}

func TestNormalizeRoot(t *testing.T) {
	wrapped := `<yml_catalog date="2026-08-30"><shop>` + innerContent + `</shop></yml_catalog>`
	bare := `<shop>` + innerContent + `</shop>`

	wrappedRoot, err := Parse(strings.NewReader(wrapped))
	require.NoError(t, err)
	bareRoot, err := Parse(strings.NewReader(bare))
	require.NoError(t, err)

	// Normalization makes the wrapped feed indistinguishable from the bare one
	w := NormalizeRoot(wrappedRoot)
	b := NormalizeRoot(bareRoot)
	assert.Equal(t, "shop", w.Name)
	assert.Equal(t, "shop", b.Name)
	assert.Equal(t, b.Child("currencies").Child("currency").AttrValue("id"),
		w.Child("currencies").Child("currency").AttrValue("id"))

	// A root whose single child is a leaf stays put
	leafRoot, err := Parse(strings.NewReader("<shop><name>Store</name></shop>"))
	require.NoError(t, err)
	assert.Equal(t, "shop", NormalizeRoot(leafRoot).Name)
}

const innerContent = `<currencies><currency id="RUB" rate="1"/></currencies>`
