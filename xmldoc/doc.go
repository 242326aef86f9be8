// Package xmldoc fills schema descriptions from an XML documentation file
// that sits next to the binary, in the layout
//
//	<doc>
//	  <members>
//	    <member name="T:example.com/shop.Order"><summary>An order.</summary></member>
//	    <member name="P:example.com/shop.Order.Total"><summary>Total in cents.</summary></member>
//	  </members>
//	</doc>
//
// Such a file is produced by the xmldoc command from Go doc comments.
//
// Register a [Resolver] once and share it across requests: the file is
// loaded at most once and every lookup, including misses, is cached for the
// life of the resolver.
//
//	r, err := xmldoc.AddXMLComments(o, xmldoc.WithPath("api.xml"))
package xmldoc
