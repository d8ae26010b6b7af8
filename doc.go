// unit2spec is a tool that migrates a plugin's Test::Unit tests to RSpec.
//
// unit2spec copies test/ into spec/ (unit becomes models, functional becomes
// controllers, foo_test.rb becomes foo_spec.rb) and rewrites every copied test
// line by line. Lines it does not recognize are kept as they are, bare shoulda
// macros become pending examples, and an assert_equal it cannot split safely
// stops the migration.
//
// Example:
//
//	cd vendor/plugins/redmine_foo && FORCE=yes unit2spec
//
// Input (test/unit/issue_test.rb):
//
//	require File.expand_path('../../test_helper', __FILE__)
//
//	class IssueTest < ActiveSupport::TestCase
//	  def test_should_create_issue
//	    assert_equal [1,2,3], @list
//	    assert_equal f(x), bar baz
//	  end
//	end
//
// Output (spec/models/issue_spec.rb):
//
//	require File.expand_path('../../spec_helper', __FILE__)
//
//	describe "Issue" do
//	  it "should create issue" do
//	    @list.should == [1,2,3]
//	    (bar baz).should == f(x)
//	  end
//	end
//
// FORCE=yes skips the first confirmation and RUN=yes the one before the spec
// suite runs; both can also come from a .env file.
package main
